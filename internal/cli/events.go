package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the trip's event log (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tripID, err := currentTripID(cmd.Context(), app, s)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := s.ListEvents(cmd.Context(), tripID, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": evs,
				"meta": map[string]any{"count": len(evs), "tripId": tripID},
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max events to return (0 = all)")
	return cmd
}
