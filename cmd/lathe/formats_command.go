package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lathe/internal/records"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "Inspect format records",
	}
	formatsCmd.AddCommand(newFormatsListCommand(ctx))
	return formatsCmd
}

func newFormatsListCommand(ctx *commandContext) *cobra.Command {
	var ownerKind string
	var ownerID string
	var field string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List format records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := records.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var recs []*records.Record
			if ownerID != "" {
				recs, err = store.ListByOwner(cmd.Context(), records.OwnerRef{Kind: ownerKind, ID: ownerID, Field: field})
			} else {
				recs, err = store.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "No format records found")
				return nil
			}

			rows := make([][]string, 0, len(recs))
			for _, rec := range recs {
				rows = append(rows, []string{
					strconv.FormatInt(rec.ID, 10),
					rec.Owner.String(),
					rec.Format,
					strconv.Itoa(rec.Progress) + "%",
					rec.OutputFile,
					rec.UpdatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Owner", "Format", "Progress", "Output", "Updated"}, rows, 1, 4))
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerKind, "owner-kind", "video", "Kind of the owning entity")
	cmd.Flags().StringVar(&ownerID, "owner-id", "", "Identifier of the owning entity")
	cmd.Flags().StringVar(&field, "field", "", "Video field name (empty matches every field)")
	return cmd
}
