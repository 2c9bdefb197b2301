package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
	"MiniCart/internal/config"
	"MiniCart/internal/storage"
	"MiniCart/pkg/kit"
)

const service = "minicart"

// errSomethingWrong is the only thing users see of a failed catalog fetch.
var errSomethingWrong = errors.New("something went wrong")

type app struct {
	cfg       config.Config
	log       *zap.Logger
	sessionID string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		catalogURL  string
		storageKind string
		storagePath string
		logLevel    string
	)

	root := &cobra.Command{
		Use:           "minicart",
		Short:         "A small shopping cart backed by durable local storage",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("catalog-url") {
				cfg.CatalogURL = catalogURL
			}
			if flags.Changed("storage") {
				cfg.Storage = storageKind
			}
			if flags.Changed("storage-path") {
				cfg.StoragePath = storagePath
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.sessionID = uuid.NewString()
			a.log = kit.NewLogger(service, cfg.LogLevel).With(zap.String("session_id", a.sessionID))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&catalogURL, "catalog-url", "", "catalog base URL (env CATALOG_URL)")
	pf.StringVar(&storageKind, "storage", "", "storage backend: memory|file|sqlite|postgres (env CART_STORAGE)")
	pf.StringVar(&storagePath, "storage-path", "", "file or sqlite path (env CART_STORAGE_PATH)")
	pf.StringVar(&logLevel, "log-level", "", "log level (env LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(a),
		newProductsCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
	)
	return root
}

// openStore opens the configured storage and the cart on top of it.
func (a *app) openStore(ctx context.Context, opts ...cart.Option) (*cart.Store, storage.KV, error) {
	kv, err := storage.Open(ctx, a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	opts = append([]cart.Option{cart.WithLogger(a.log)}, opts...)
	return cart.Open(ctx, cart.NewKVStorage(kv), opts...), kv, nil
}

// loadCatalog fetches the catalog once and waits for it to settle.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Loader, error) {
	l := catalog.NewLoader(catalog.NewClient(a.cfg.CatalogURL), a.log)
	if st := l.Load(ctx); st.Status != catalog.StatusReady {
		return nil, errSomethingWrong
	}
	return l, nil
}
