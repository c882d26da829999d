package cli

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"itinerary-cli/internal/mutate"
	"itinerary-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTripsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Create, select and inspect trips",
	}
	cmd.AddCommand(newTripsCreateCmd(app))
	cmd.AddCommand(newTripsListCmd(app))
	cmd.AddCommand(newTripsShowCmd(app))
	cmd.AddCommand(newTripsUseCmd(app))
	cmd.AddCommand(newTripsSetDaysCmd(app))
	cmd.AddCommand(newTripsPublishCmd(app))
	return cmd
}

func newTripsCreateCmd(app *App) *cobra.Command {
	var days int
	var use bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a trip (selected automatically when it is the first one)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentActorID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			t, err := s.CreateTrip(ctx, actorID, strings.Join(args, " "), days, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := s.CurrentTripID(ctx); errors.Is(err, store.ErrNoCurrentTrip) {
				use = true
			}
			if use {
				if err := s.SetCurrentTripID(ctx, t.ID); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": t,
				"meta": map[string]any{"current": use, "db": s.Path},
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 1, "Number of days")
	cmd.Flags().BoolVar(&use, "use", false, "Select the new trip")
	return cmd
}

func newTripsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trips (oldest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			trips, err := s.ListTrips(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, _ := s.CurrentTripID(ctx)
			return writeOut(cmd, app, map[string]any{
				"data": tripRows(trips),
				"meta": map[string]any{"count": len(trips), "currentTripId": cur},
			})
		},
	}
}

func newTripsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [trip-id]",
		Short: "Show a trip with its items grouped by container",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.TripID = args[0]
			}
			_, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, map[string]any{"data": sections(t, items)})
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"trip":     t,
					"sections": sections(t, items),
				},
				"meta": map[string]any{"items": len(items), "revision": t.Revision},
			})
		},
	}
}

func newTripsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <trip-id>",
		Short: "Select the trip later commands act on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SetCurrentTripID(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentTripId": args[0]}})
		},
	}
}

func newTripsSetDaysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-days <n>",
		Short: "Change the trip length; items on dropped days go back to unscheduled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentActorID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetDurationDays(t, items, n)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				saved, err := s.SaveTripState(cmd.Context(), actorID, res.Trip, res.Items, "trip.set_days", t.ID, res.EventPayload)
				if err != nil {
					return writeErr(cmd, err)
				}
				res.Trip = saved
			}
			return writeOut(cmd, app, map[string]any{
				"data": res.Trip,
				"meta": map[string]any{"changed": res.Changed, "displaced": res.Displaced},
			})
		},
	}
}
