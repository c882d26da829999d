package mutate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"

	"github.com/google/go-cmp/cmp"
)

func item(id string, c model.ContainerID, pos int) model.Item {
	return model.Item{ID: id, ContainerID: c, Position: pos, Title: id}
}

func TestAddItem_AppendsToUnscheduled(t *testing.T) {
	trip := model.Trip{ID: "trip-1", DurationDays: 2, DayOrder: []int{1, 2}}
	items := []model.Item{
		item("u1", model.Unscheduled, 0),
		item("u2", model.Unscheduled, 1),
		item("a", model.DayContainer(1), 0),
	}

	res, err := AddItem(trip, items, "  Castle tour ", "sight", time.Now())
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !strings.HasPrefix(res.Item.ID, "item-") {
		t.Fatalf("expected item- prefix, got %q", res.Item.ID)
	}
	if res.Item.Title != "Castle tour" || res.Item.TripID != "trip-1" {
		t.Fatalf("unexpected item: %#v", res.Item)
	}
	if res.Item.ContainerID != model.Unscheduled || res.Item.Position != 2 {
		t.Fatalf("expected unscheduled@2, got %s@%d", res.Item.ContainerID, res.Item.Position)
	}
	if err := order.CheckInvariants(res.Items, trip.DurationDays); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("input slice was modified")
	}

	if _, err := AddItem(trip, items, "   ", "", time.Now()); !errors.As(err, &EmptyTitleError{}) {
		t.Fatalf("expected EmptyTitleError, got %v", err)
	}
}

func TestDeleteItem_ClosesGap(t *testing.T) {
	items := []model.Item{
		item("a", model.DayContainer(1), 0),
		item("b", model.DayContainer(1), 1),
		item("c", model.DayContainer(1), 2),
	}
	res, err := DeleteItem(items, "a", 1)
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if res.Item.ID != "a" {
		t.Fatalf("expected removed a, got %q", res.Item.ID)
	}
	if diff := cmp.Diff([]string{"b", "c"}, order.ContainerIDs(res.Items, model.DayContainer(1))); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if err := order.CheckInvariants(res.Items, 1); err != nil {
		t.Fatalf("invariants: %v", err)
	}

	var nf NotFoundError
	if _, err := DeleteItem(items, "ghost", 1); !errors.As(err, &nf) || nf.ID != "ghost" {
		t.Fatalf("expected NotFoundError for ghost, got %v", err)
	}
}

func TestSetDurationDays_ShrinkDisplacesDroppedDays(t *testing.T) {
	trip := model.Trip{ID: "trip-1", DurationDays: 3, DayOrder: []int{3, 1, 2}}
	items := []model.Item{
		item("u1", model.Unscheduled, 0),
		item("a", model.DayContainer(1), 0),
		item("c2", model.DayContainer(3), 1),
		item("b", model.DayContainer(2), 0),
		item("c1", model.DayContainer(3), 0),
	}

	res, err := SetDurationDays(trip, items, 1)
	if err != nil {
		t.Fatalf("SetDurationDays: %v", err)
	}
	if !res.Changed || res.Trip.DurationDays != 1 {
		t.Fatalf("expected change to 1 day, got %#v", res.Trip)
	}
	if diff := cmp.Diff([]int{1}, res.Trip.DayOrder); diff != "" {
		t.Fatalf("day order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "c1", "c2"}, res.Displaced); diff != "" {
		t.Fatalf("displaced mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"u1", "b", "c1", "c2"}, order.ContainerIDs(res.Items, model.Unscheduled)); diff != "" {
		t.Fatalf("unscheduled mismatch (-want +got):\n%s", diff)
	}
	if err := order.CheckInvariants(res.Items, 1); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestSetDurationDays_GrowAppendsDays(t *testing.T) {
	trip := model.Trip{ID: "trip-1", DurationDays: 2, DayOrder: []int{2, 1}}
	res, err := SetDurationDays(trip, nil, 4)
	if err != nil {
		t.Fatalf("SetDurationDays: %v", err)
	}
	if diff := cmp.Diff([]int{2, 1, 3, 4}, res.Trip.DayOrder); diff != "" {
		t.Fatalf("day order mismatch (-want +got):\n%s", diff)
	}
	if len(res.Displaced) != 0 {
		t.Fatalf("expected nothing displaced, got %v", res.Displaced)
	}

	same, err := SetDurationDays(trip, nil, 2)
	if err != nil {
		t.Fatalf("SetDurationDays: %v", err)
	}
	if same.Changed {
		t.Fatalf("expected unchanged duration to report no change")
	}
	if _, err := SetDurationDays(trip, nil, 0); err == nil {
		t.Fatalf("expected error for zero days")
	}
}
