package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category vocabulary",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active categories",
		RunE: func(c *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := c.Context()
			if err := a.store.SeedDefaultCategories(ctx); err != nil {
				return err
			}
			ids, err := a.store.CategoryIDs(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.AddCategory(c.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Added category %s\n", args[0])
			return nil
		},
	})

	return cmd
}
