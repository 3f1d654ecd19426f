package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/erp/client/internal/api"
)

func newCustomerCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Browse and manage customers",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			return app.requireSession(cmd)
		},
	}
	cmd.AddCommand(
		newCustomerListCommand(app),
		newCustomerGetCommand(app),
		newCustomerCreateCommand(app),
		newCustomerDeleteCommand(app),
	)
	return cmd
}

func newCustomerListCommand(app *App) *cobra.Command {
	var opts api.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, meta, err := app.client.Customers.List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tCODE\tNAME\tPHONE\tEMAIL")
			for _, c := range customers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Code, c.Name, c.Phone, c.Email)
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

func newCustomerGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid customer id %q: %w", args[0], err)
			}

			c, err := app.client.Customers.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			cmd.Printf("%s  %s\n", c.Code, c.Name)
			cmd.Printf("  id:    %s\n", c.ID)
			if c.Phone != "" {
				cmd.Printf("  phone: %s\n", c.Phone)
			}
			if c.Email != "" {
				cmd.Printf("  email: %s\n", c.Email)
			}
			if c.Level != "" {
				cmd.Printf("  level: %s\n", c.Level)
			}
			return nil
		},
	}
}

func newCustomerCreateCommand(app *App) *cobra.Command {
	var form api.CustomerForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.client.Customers.Create(cmd.Context(), &form)
			if err != nil {
				return err
			}
			cmd.Printf("Created customer %s (%s)\n", c.Code, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Code, "code", "", "customer code (required)")
	cmd.Flags().StringVar(&form.Name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&form.Email, "email", "", "contact email")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCustomerDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid customer id %q: %w", args[0], err)
			}
			if err := app.client.Customers.Delete(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("Deleted customer %s\n", id)
			return nil
		},
	}
}
