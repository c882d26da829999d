package mutate

import (
	"errors"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"
)

type DurationResult struct {
	Trip  model.Trip
	Items []model.Item
	// Displaced lists the items moved to unscheduled because their day was dropped.
	Displaced    []string
	Changed      bool
	EventPayload map[string]any
}

// SetDurationDays changes the number of days on a trip. Shrinking moves the
// items of dropped days to the end of unscheduled, keeping day then position
// order, and removes those days from the day order. Growing appends the new
// days to the end of the day order.
func SetDurationDays(trip model.Trip, items []model.Item, days int) (DurationResult, error) {
	if days < 1 {
		return DurationResult{}, errors.New("trip needs at least one day")
	}
	if days == trip.DurationDays {
		return DurationResult{Trip: trip, Items: model.CloneItems(items)}, nil
	}
	prevDays := trip.DurationDays

	// Work against the larger day range so every current item is valid.
	work, err := order.RenormalizeAll(items, max(days, prevDays))
	if err != nil {
		return DurationResult{}, err
	}

	var displaced []string
	next := len(order.ContainerItems(work, model.Unscheduled))
	for d := days + 1; d <= prevDays; d++ {
		for _, it := range order.ContainerItems(work, model.DayContainer(d)) {
			for i := range work {
				if work[i].ID == it.ID {
					work[i].ContainerID = model.Unscheduled
					work[i].Position = next
					next++
				}
			}
			displaced = append(displaced, it.ID)
		}
	}

	dayOrder := make([]int, 0, days)
	for _, d := range trip.DayOrder {
		if d <= days {
			dayOrder = append(dayOrder, d)
		}
	}
	for d := prevDays + 1; d <= days; d++ {
		dayOrder = append(dayOrder, d)
	}

	t := trip
	t.DurationDays = days
	t.DayOrder = dayOrder
	if err := order.CheckInvariants(work, days); err != nil {
		return DurationResult{}, err
	}
	if err := order.ValidateDayOrder(dayOrder, days); err != nil {
		return DurationResult{}, err
	}
	if displaced == nil {
		displaced = []string{}
	}
	return DurationResult{
		Trip:      t,
		Items:     work,
		Displaced: displaced,
		Changed:   true,
		EventPayload: map[string]any{
			"from":      prevDays,
			"to":        days,
			"displaced": displaced,
		},
	}, nil
}
