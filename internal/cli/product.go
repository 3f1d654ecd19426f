package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/erp/client/internal/api"
)

func newProductCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Browse and manage catalog products",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			return app.requireSession(cmd)
		},
	}
	cmd.AddCommand(
		newProductListCommand(app),
		newProductGetCommand(app),
		newProductCreateCommand(app),
		newProductUpdateCommand(app),
		newProductDeleteCommand(app),
	)
	return cmd
}

func newProductListCommand(app *App) *cobra.Command {
	var opts api.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, meta, err := app.client.Products.List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tCODE\tNAME\tPRICE\tACTIVE")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", p.ID, p.Code, p.Name, p.Price, p.IsActive)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			printMeta(cmd, meta)
			return nil
		},
	}

	addListFlags(cmd, &opts)
	return cmd
}

func newProductGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", args[0], err)
			}

			p, err := app.client.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			cmd.Printf("%s  %s\n", p.Code, p.Name)
			cmd.Printf("  id:     %s\n", p.ID)
			cmd.Printf("  price:  %s\n", p.Price)
			cmd.Printf("  cost:   %s\n", p.Cost)
			cmd.Printf("  unit:   %s\n", p.Unit)
			cmd.Printf("  active: %t\n", p.IsActive)
			if p.Description != "" {
				cmd.Printf("  description: %s\n", p.Description)
			}
			return nil
		},
	}
}

func newProductCreateCommand(app *App) *cobra.Command {
	var form api.ProductForm
	var price, cost string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if form.Price, err = parseAmount(price, "price"); err != nil {
				return err
			}
			if form.Cost, err = parseAmount(cost, "cost"); err != nil {
				return err
			}

			p, err := app.client.Products.Create(cmd.Context(), &form)
			if err != nil {
				return err
			}
			cmd.Printf("Created product %s (%s)\n", p.Code, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Code, "code", "", "product code (required)")
	cmd.Flags().StringVar(&form.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&form.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&form.Unit, "unit", "", "sales unit, e.g. pcs")
	cmd.Flags().StringVar(&price, "price", "0", "sales price")
	cmd.Flags().StringVar(&cost, "cost", "0", "purchase cost")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProductUpdateCommand(app *App) *cobra.Command {
	var form api.ProductForm
	var price, cost string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", args[0], err)
			}
			if form.Price, err = parseAmount(price, "price"); err != nil {
				return err
			}
			if form.Cost, err = parseAmount(cost, "cost"); err != nil {
				return err
			}

			p, err := app.client.Products.Update(cmd.Context(), id, &form)
			if err != nil {
				return err
			}
			cmd.Printf("Updated product %s (%s)\n", p.Code, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Code, "code", "", "product code (required)")
	cmd.Flags().StringVar(&form.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&form.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&form.Unit, "unit", "", "sales unit, e.g. pcs")
	cmd.Flags().StringVar(&price, "price", "0", "sales price")
	cmd.Flags().StringVar(&cost, "cost", "0", "purchase cost")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProductDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", args[0], err)
			}
			if err := app.client.Products.Delete(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("Deleted product %s\n", id)
			return nil
		},
	}
}

// addListFlags registers the shared pagination flags.
func addListFlags(cmd *cobra.Command, opts *api.ListOptions) {
	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number (1-based)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "items per page")
	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by keyword")
}

// parseAmount parses a decimal flag value.
func parseAmount(s, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return d, nil
}
