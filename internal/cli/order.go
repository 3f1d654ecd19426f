package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/erp/client/internal/api"
)

func newOrderCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Browse sales and purchase orders",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			return app.requireSession(cmd)
		},
	}
	cmd.AddCommand(
		newOrderListCommand(app),
		newOrderGetCommand(app),
	)
	return cmd
}

func newOrderListCommand(app *App) *cobra.Command {
	var opts api.ListOptions
	var purchase bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders (sales by default, --purchase for purchase orders)",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tORDER NO\tSTATUS\tTOTAL\tCREATED")

			var meta *api.Meta
			if purchase {
				orders, m, err := app.client.PurchaseOrders.List(cmd.Context(), opts)
				if err != nil {
					return err
				}
				meta = m
				for _, o := range orders {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						o.ID, o.OrderNo, o.Status, o.TotalAmount, o.CreatedAt.Format("2006-01-02"))
				}
			} else {
				orders, m, err := app.client.SalesOrders.List(cmd.Context(), opts)
				if err != nil {
					return err
				}
				meta = m
				for _, o := range orders {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						o.ID, o.OrderNo, o.Status, o.TotalAmount, o.CreatedAt.Format("2006-01-02"))
				}
			}

			if err := w.Flush(); err != nil {
				return err
			}
			printMeta(cmd, meta)
			return nil
		},
	}

	addListFlags(cmd, &opts)
	cmd.Flags().BoolVar(&purchase, "purchase", false, "list purchase orders instead of sales orders")
	return cmd
}

func newOrderGetCommand(app *App) *cobra.Command {
	var purchase bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid order id %q: %w", args[0], err)
			}

			var orderNo, status, total string
			var items []api.OrderItem
			if purchase {
				o, err := app.client.PurchaseOrders.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				orderNo, status, total, items = o.OrderNo, o.Status, o.TotalAmount.String(), o.Items
			} else {
				o, err := app.client.SalesOrders.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				orderNo, status, total, items = o.OrderNo, o.Status, o.TotalAmount.String(), o.Items
			}

			cmd.Printf("Order %s\n", orderNo)
			cmd.Printf("  status: %s\n", status)
			cmd.Printf("  total:  %s\n", total)

			if len(items) > 0 {
				w := newTable(cmd)
				fmt.Fprintln(w, "  PRODUCT\tQTY\tUNIT PRICE\tAMOUNT")
				for _, it := range items {
					fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", it.Name, it.Quantity, it.UnitPrice, it.Amount)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&purchase, "purchase", false, "fetch a purchase order instead of a sales order")
	return cmd
}
