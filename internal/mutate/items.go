package mutate

import (
	"fmt"
	"strings"
	"time"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"
	"itinerary-cli/internal/store"
)

type ItemResult struct {
	Item         model.Item
	Items        []model.Item
	EventPayload map[string]any
}

// AddItem appends a new item to the end of the unscheduled bucket.
// Callers are responsible for saving the returned items and recording item.create.
func AddItem(trip model.Trip, items []model.Item, title, category string, now time.Time) (ItemResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return ItemResult{}, EmptyTitleError{}
	}
	id, err := store.NewItemID()
	if err != nil {
		return ItemResult{}, err
	}
	// Repair the bucket first so max+1 is also the count.
	out, err := order.RenormalizeContainer(items, model.Unscheduled, trip.DurationDays)
	if err != nil {
		return ItemResult{}, err
	}
	now = now.UTC()
	it := model.Item{
		ID:          id,
		TripID:      trip.ID,
		ContainerID: model.Unscheduled,
		Position:    len(order.ContainerItems(out, model.Unscheduled)),
		Title:       title,
		Category:    strings.TrimSpace(category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	out = append(out, it)
	return ItemResult{
		Item:  it,
		Items: out,
		EventPayload: map[string]any{
			"title":     it.Title,
			"category":  it.Category,
			"container": string(it.ContainerID),
			"position":  it.Position,
		},
	}, nil
}

// DeleteItem removes itemID and closes the gap it leaves in its container.
func DeleteItem(items []model.Item, itemID string, durationDays int) (ItemResult, error) {
	itemID = strings.TrimSpace(itemID)
	removed, ok := order.Find(items, itemID)
	if !ok {
		return ItemResult{}, NotFoundError{Kind: "item", ID: itemID}
	}
	rest := make([]model.Item, 0, len(items)-1)
	for _, it := range items {
		if it.ID != itemID {
			rest = append(rest, it)
		}
	}
	out, err := order.RenormalizeContainer(rest, removed.ContainerID, durationDays)
	if err != nil {
		return ItemResult{}, fmt.Errorf("delete %s: %w", itemID, err)
	}
	return ItemResult{
		Item:  removed,
		Items: out,
		EventPayload: map[string]any{
			"container": string(removed.ContainerID),
			"position":  removed.Position,
		},
	}, nil
}
