package order

import (
	"fmt"

	"itinerary-cli/internal/model"
)

// RenormalizeContainer reassigns positions 0..n-1 to the items of c, keeping
// their relative order (position, then array order). Items outside c are
// copied unchanged and the array order of the collection is preserved.
func RenormalizeContainer(items []model.Item, c model.ContainerID, durationDays int) ([]model.Item, error) {
	if err := validContainer(c, durationDays); err != nil {
		return nil, err
	}
	out := model.CloneItems(items)
	renormalizeInPlace(out, c)
	return out, nil
}

// RenormalizeAll renormalizes every container: unscheduled first, then days in
// ascending order. Any item in an invalid container fails the whole call.
func RenormalizeAll(items []model.Item, durationDays int) ([]model.Item, error) {
	for _, it := range items {
		if err := validContainer(it.ContainerID, durationDays); err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
	}
	out := model.CloneItems(items)
	for _, c := range Containers(durationDays) {
		renormalizeInPlace(out, c)
	}
	return out, nil
}

func renormalizeInPlace(items []model.Item, c model.ContainerID) {
	for rank, i := range members(items, c) {
		items[i].Position = rank
	}
}
