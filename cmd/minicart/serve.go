package main

import (
	"context"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
	"MiniCart/pkg/kit"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port        string
		fakeCatalog string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cart over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			return a.serve(cmd.Context(), fakeCatalog)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (env PORT)")
	cmd.Flags().StringVar(&fakeCatalog, "with-fake-catalog", "",
		"also serve the built-in fake catalog on this address and fetch from it")
	return cmd
}

func (a *app) serve(ctx context.Context, fakeCatalogAddr string) error {
	cartLn, err := net.Listen("tcp", ":"+a.cfg.Port)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()

	store, kv, err := a.openStore(ctx, cart.WithMetrics(cart.NewMetrics(reg)))
	if err != nil {
		_ = cartLn.Close()
		return err
	}
	defer kv.Close()

	g, gctx := errgroup.WithContext(ctx)

	catalogURL := a.cfg.CatalogURL
	if fakeCatalogAddr != "" {
		ln, err := net.Listen("tcp", fakeCatalogAddr)
		if err != nil {
			_ = cartLn.Close()
			return err
		}
		catalogURL = "http://" + ln.Addr().String()

		catLog := a.log.Named("catalog")
		fake := kit.NewServiceHandler(
			(&catalog.Server{Store: catalog.NewMemStore(), Log: catLog}).Routes(),
			kit.HTTPDeps{Log: catLog, Service: "catalog"},
		)
		g.Go(func() error { return kit.Serve(gctx, ln, fake, catLog) })
	}

	loader := catalog.NewLoader(catalog.NewClient(catalogURL), a.log)
	loader.Start(gctx)

	s := &cart.Server{
		Store:   store,
		Catalog: loader,
		Health:  kv,
		Log:     a.log,
		Limit:   kit.NewIPRateLimiter(a.cfg.RateLimit, a.cfg.RateLimitWindow).Middleware,
	}
	h := cart.NewHandler(s, cart.HTTPDeps{
		Log:            a.log,
		Service:        service,
		SessionID:      a.sessionID,
		Registry:       reg,
		MetricsEnabled: a.cfg.MetricsEnabled,
		MetricsToken:   a.cfg.MetricsToken,
	})

	a.log.Info("serving cart",
		zap.String("catalog_url", catalogURL),
		zap.String("storage", a.cfg.Storage),
		zap.Int("items", store.TotalCount()),
	)

	g.Go(func() error { return kit.Serve(gctx, cartLn, h, a.log) })
	return g.Wait()
}
