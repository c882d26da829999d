package cli

import (
	"itinerary-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newTripsPublishCmd(app *App) *cobra.Command {
	var to string
	var opt publish.WriteOptions

	cmd := &cobra.Command{
		Use:   "publish --to <dir>",
		Short: "Export the trip as Markdown (and optionally HTML)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteTrip(t, items, to, opt)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"meta": map[string]any{"tripId": t.ID},
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&opt.IncludeUnscheduled, "include-unscheduled", false, "Append the unscheduled ideas")
	cmd.Flags().BoolVar(&opt.IncludeNotes, "include-notes", false, "Include item notes")
	cmd.Flags().BoolVar(&opt.HTML, "html", false, "Also write an HTML page")
	cmd.Flags().BoolVar(&opt.Overwrite, "overwrite", false, "Replace existing files")
	return cmd
}
