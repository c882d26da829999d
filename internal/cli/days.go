package cli

import (
	"strings"

	"itinerary-cli/internal/drag"
	"itinerary-cli/internal/model"
	"itinerary-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "days",
		Short: "Inspect and reorder the days of a trip",
	}
	cmd.AddCommand(newDaysOrderCmd(app))
	cmd.AddCommand(newDaysReorderCmd(app))
	return cmd
}

func newDaysOrderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Show the day display order with item counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			days := sections(t, items)[1:]
			return writeOut(cmd, app, map[string]any{
				"data": days,
				"meta": map[string]any{"dayOrder": t.DayOrder},
			})
		},
	}
}

func newDaysReorderCmd(app *App) *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "reorder <day-n> [--before <day-n>]",
		Short: "Move a day before another (or to the end); items keep their positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, err := currentActorID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			target := containerArg(before)
			if b := strings.TrimSpace(before); b == "" || strings.EqualFold(b, "end") {
				target = model.Unscheduled
			}

			board := drag.NewMemoryBoard(items, t.DayOrder)
			gw := store.Gateway{Store: s, TripID: t.ID, ActorID: actorID}
			ctl := drag.New(board, gw, t.DurationDays, drag.WithLogger(app.logger().Named("drag")))
			out, err := ctl.ReorderSections(cmd.Context(), containerArg(args[0]), target)
			if err != nil {
				return writeErr(cmd, err)
			}
			if out.Kind == drag.OutcomeRolledBack {
				return writeErr(cmd, out.Err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"tripId": t.ID},
			})
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Day to insert before (empty or \"end\" appends)")
	return cmd
}
