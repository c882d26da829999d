package cli

import (
	"context"
	"errors"
	"strings"

	"itinerary-cli/internal/drag"
	"itinerary-cli/internal/model"
	"itinerary-cli/internal/store"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errDryRun = errors.New("dry run: nothing persisted")

func newItemsMoveCmd(app *App) *cobra.Command {
	var over string
	var via []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "move <item-id> --over <item-id|unscheduled|day-n>",
		Short: "Drag an item onto a container or next to another item",
		Long: strings.TrimSpace(`
Runs one drag gesture: pick up the item, hover each --via target in turn, then
drop it over --over. Dropping over a container appends to it; dropping over an
item takes that item's slot. An empty --over discards the gesture.

With --dry-run the drop is resolved but not persisted, and a unified diff of
the resulting layout is returned instead.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, err := currentActorID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			board := drag.NewMemoryBoard(items, t.DayOrder)
			var gw drag.Gateway = store.Gateway{Store: s, TripID: t.ID, ActorID: actorID}
			var proposed []model.Item
			log := app.logger().Named("drag")
			if dryRun {
				log = zap.NewNop()
				gw = drag.GatewayFuncs{
					ItemMovedFunc: func(ctx context.Context, itemID string, container model.ContainerID, position int) error {
						proposed = board.Items()
						return errDryRun
					},
				}
			}
			ctl := drag.New(board, gw, t.DurationDays, drag.WithLogger(log))

			out, err := runGesture(cmd.Context(), ctl, args[0], via, over)
			if err != nil {
				return writeErr(cmd, err)
			}

			if dryRun {
				after := items
				if proposed != nil {
					after = proposed
				}
				diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
					A:        layoutLines(t, items),
					B:        layoutLines(t, after),
					FromFile: "current",
					ToFile:   "proposed",
					Context:  2,
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				kind := out.Kind
				if proposed != nil {
					kind = drag.OutcomeCommitted
				}
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{
						"kind":      kind,
						"itemId":    out.ItemID,
						"from":      out.From,
						"container": out.Container,
						"position":  out.Position,
						"diff":      diff,
					},
					"meta": map[string]any{"dryRun": true, "revision": t.Revision},
				})
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
	cmd.Flags().StringVar(&over, "over", "", "Drop target: an item id, unscheduled or day-<n>")
	cmd.Flags().StringSliceVar(&via, "via", nil, "Targets hovered before the drop")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve the drop and print the resulting layout diff without saving")
	return cmd
}

// runGesture replays start, hovers and drop against ctl. Any failure after the
// item was picked up cancels the gesture so the board is restored.
func runGesture(ctx context.Context, ctl *drag.Controller, itemID string, via []string, over string) (drag.Outcome, error) {
	if _, err := ctl.Start(itemID); err != nil {
		return drag.Outcome{}, err
	}
	for _, v := range via {
		if _, err := ctl.Move(strings.TrimSpace(v)); err != nil {
			ctl.Cancel()
			return drag.Outcome{}, err
		}
	}
	if over != "" {
		if _, err := ctl.Move(strings.TrimSpace(over)); err != nil {
			ctl.Cancel()
			return drag.Outcome{}, err
		}
	}
	return ctl.End(ctx, strings.TrimSpace(over))
}
