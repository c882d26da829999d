// Package order maintains the assignment of itinerary items to containers (the
// unscheduled bucket plus one bucket per trip day) and keeps every container's
// positions dense. Everything here is a pure function over a slice of items;
// callers own the slice and receive fresh copies back.
package order

import (
	"fmt"
	"sort"

	"itinerary-cli/internal/model"
)

// InvalidContainerError reports a container reference that is malformed or
// outside the trip's day range. It is a programming error, never coerced.
type InvalidContainerError struct {
	Raw          string
	DurationDays int
	Reason       string
}

func (e *InvalidContainerError) Error() string {
	return fmt.Sprintf("invalid container %q: %s", e.Raw, e.Reason)
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ParseContainerID validates s against a trip of durationDays days.
func ParseContainerID(s string, durationDays int) (model.ContainerID, error) {
	c := model.ContainerID(s)
	if c == model.Unscheduled {
		return c, nil
	}
	n, ok := c.Day()
	if !ok {
		return "", &InvalidContainerError{Raw: s, DurationDays: durationDays, Reason: "expected \"unscheduled\" or \"day-<n>\""}
	}
	if n > durationDays {
		return "", &InvalidContainerError{Raw: s, DurationDays: durationDays, Reason: fmt.Sprintf("day out of range 1..%d", durationDays)}
	}
	return c, nil
}

func validContainer(c model.ContainerID, durationDays int) error {
	_, err := ParseContainerID(string(c), durationDays)
	return err
}

// Containers returns the valid container set in processing order: unscheduled
// first, then days ascending.
func Containers(durationDays int) []model.ContainerID {
	out := make([]model.ContainerID, 0, durationDays+1)
	out = append(out, model.Unscheduled)
	for d := 1; d <= durationDays; d++ {
		out = append(out, model.DayContainer(d))
	}
	return out
}

// members returns the indexes of items in c ordered by position. Ties keep
// array order.
func members(items []model.Item, c model.ContainerID) []int {
	idx := make([]int, 0, 8)
	for i := range items {
		if items[i].ContainerID == c {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].Position < items[idx[b]].Position
	})
	return idx
}

// ContainerItems returns copies of the items in c, in display order.
func ContainerItems(items []model.Item, c model.ContainerID) []model.Item {
	idx := members(items, c)
	out := make([]model.Item, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i].Clone())
	}
	return out
}

// ContainerIDs returns the ids of the items in c, in display order.
func ContainerIDs(items []model.Item, c model.ContainerID) []string {
	idx := members(items, c)
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i].ID)
	}
	return out
}

func indexOf(items []model.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Locate reports the container and position of an item.
func Locate(items []model.Item, id string) (model.ContainerID, int, bool) {
	i := indexOf(items, id)
	if i < 0 {
		return "", 0, false
	}
	return items[i].ContainerID, items[i].Position, true
}

// Find returns a copy of the item with the given id.
func Find(items []model.Item, id string) (model.Item, bool) {
	i := indexOf(items, id)
	if i < 0 {
		return model.Item{}, false
	}
	return items[i].Clone(), true
}
