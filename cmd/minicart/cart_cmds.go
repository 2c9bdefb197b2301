package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/view"
)

func newProductsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Fetch and list the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			products := l.State().Products
			if output != view.FormatText {
				return view.Encode(cmd.OutOrStdout(), output, view.ProductsDoc(products))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), view.Products(products))
			return err
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart badge and panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, kv, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer kv.Close()

			return printCart(cmd.OutOrStdout(), output, store.Items())
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a catalog product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			l, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			p, ok := l.Product(id)
			if !ok {
				return fmt.Errorf("unknown product %d", id)
			}

			return a.dispatch(cmd, output, cart.AddItemCmd{Product: p})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove one unit of a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.dispatch(cmd, output, cart.RemoveItemCmd{ID: id})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func (a *app) dispatch(cmd *cobra.Command, output string, c cart.Command) error {
	store, kv, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer kv.Close()

	items, err := store.Dispatch(cmd.Context(), c)
	if err != nil {
		a.log.Error("cart not saved", zap.String("command", c.Name()), zap.Error(err))
		return fmt.Errorf("save cart: %w", err)
	}
	return printCart(cmd.OutOrStdout(), output, items)
}

func printCart(w io.Writer, output string, items cart.Cart) error {
	if output != view.FormatText {
		return view.Encode(w, output, view.CartDoc(items))
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", view.Badge(cart.TotalCount(items)), view.Panel(items))
	return err
}

func addOutputFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "output", "o", view.FormatText, "output format: text|json|yaml")
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad product id %q", raw)
	}
	return id, nil
}
