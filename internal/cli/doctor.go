package cli

import (
	"itinerary-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the trip's stored layout for gaps, duplicates and bad containers",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tripID, err := currentTripID(cmd.Context(), app, s)
			if err != nil {
				return writeErr(cmd, err)
			}
			report, err := s.Doctor(cmd.Context(), tripID)
			if err != nil {
				return writeErr(cmd, err)
			}

			meta := map[string]any{
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
			}
			hints := []string{}
			if report.HasErrors() {
				hints = append(hints, "itinerary reindex")
			}
			if err := writeOut(cmd, app, map[string]any{
				"data":   report,
				"meta":   meta,
				"_hints": hints,
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}

func newReindexCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Renormalize every container of the trip to dense positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, err := currentActorID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tripID, err := currentTripID(cmd.Context(), app, s)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, changed, err := s.Reindex(cmd.Context(), actorID, tripID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": t,
				"meta": map[string]any{"changed": changed},
			})
		},
	}
}
