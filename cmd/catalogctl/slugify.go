package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rentcatalog/internal/pkg/slug"
)

func newSlugifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slugify <text>...",
		Short: "Print the URL slug derived from a display name",
		Args:  cobra.MinimumNArgs(1),
		// needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), slug.Make(strings.Join(args, " ")))
			return err
		},
	}
}
