package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"rentcatalog/internal/domain/upload"
)

func newCleanupImagesCmd(c *cli) *cobra.Command {
	var del bool

	cmd := &cobra.Command{
		Use:   "cleanup-images",
		Short: "Find (and optionally delete) images no equipment references",
		Long: `Scans <STATIC_DIR>/images/equipment and compares every file with the images
listed on equipment records. Without --delete this is a dry run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			images := upload.NewService(c.cfg.StaticDir, upload.Options{}, store, c.log)
			out := cmd.OutOrStdout()

			mode := "dry run"
			if del {
				mode = "delete"
			}
			fmt.Fprintf(out, "Scanning %s (%s)\n", images.BaseDir(), mode)

			orphans, err := images.FindOrphans(cmd.Context())
			if err != nil {
				return err
			}
			if len(orphans) == 0 {
				fmt.Fprintln(out, "No orphaned images found.")
				return nil
			}

			var total int64
			for _, o := range orphans {
				total += o.Size
				fmt.Fprintf(out, "  %s  %s\n", o.URL, humanize.IBytes(uint64(o.Size)))
			}
			fmt.Fprintf(out, "%d orphaned image(s), %s\n", len(orphans), humanize.IBytes(uint64(total)))

			if !del {
				fmt.Fprintln(out, "Run with --delete to remove them.")
				return nil
			}

			removed, freed := images.RemoveOrphans(cmd.Context(), orphans)
			fmt.Fprintf(out, "Deleted %d file(s), freed %s\n", removed, humanize.IBytes(uint64(freed)))
			if removed != len(orphans) {
				return fmt.Errorf("%d file(s) could not be deleted", len(orphans)-removed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&del, "delete", false, "Delete the orphaned files")
	return cmd
}
