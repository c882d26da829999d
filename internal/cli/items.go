package cli

import (
	"strings"
	"time"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/mutate"
	"itinerary-cli/internal/order"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Add, list, remove and move trip items",
	}
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsRmCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	return cmd
}

func newItemsAddCmd(app *App) *cobra.Command {
	var category string
	var container string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an item (appended to unscheduled unless --to is given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, err := currentActorID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddItem(t, items, strings.Join(args, " "), category, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			next := res.Items
			if container != "" {
				c, err := order.ParseContainerID(container, t.DurationDays)
				if err != nil {
					return writeErr(cmd, err)
				}
				end := len(order.ContainerItems(next, c))
				if next, err = order.Place(next, res.Item.ID, c, end, t.DurationDays); err != nil {
					return writeErr(cmd, err)
				}
				res.EventPayload["container"] = string(c)
				res.EventPayload["position"] = end
			}
			if _, err := s.SaveTripState(cmd.Context(), actorID, t, next, "item.create", res.Item.ID, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := order.Find(next, res.Item.ID)
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Free-form category (sight, food, transit, ...)")
	cmd.Flags().StringVar(&container, "to", "", "Container to append to (unscheduled|day-<n>)")
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var container string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := displayItems(t, items)
			if container != "" {
				c, err := order.ParseContainerID(container, t.DurationDays)
				if err != nil {
					return writeErr(cmd, err)
				}
				out = itemRows(order.ContainerItems(items, c))
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"count": len(out), "tripId": t.ID},
			})
		},
	}
	cmd.Flags().StringVar(&container, "container", "", "Only list one container (unscheduled|day-<n>)")
	return cmd
}

func newItemsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id>",
		Aliases: []string{"delete"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, err := currentActorID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, t, items, err := loadTrip(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.DeleteItem(items, args[0], t.DurationDays)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := s.SaveTripState(cmd.Context(), actorID, t, res.Items, "item.delete", res.Item.ID, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res.Item,
				"meta": map[string]any{"remaining": order.ContainerIDs(res.Items, res.Item.ContainerID)},
			})
		},
	}
}

func containerArg(raw string) model.ContainerID { return model.ContainerID(strings.TrimSpace(raw)) }
