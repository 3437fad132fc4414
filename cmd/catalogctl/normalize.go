package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rentcatalog/internal/domain/catalog"
)

func newNormalizeCategoriesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-categories",
		Short: "Rewrite equipment category names to category ids",
		Long: `Older data files reference categories by display name. This rewrites every
equipment record whose category equals a category name to that category's id.
Values that match neither an id nor a name are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			svc := catalog.NewService(store, nil, c.log)
			n, err := svc.NormalizeCategoryRefs(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "normalized %d equipment record(s)\n", n)
			return err
		},
	}
}
