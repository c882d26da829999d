package store

import (
	"context"
	"errors"
	"fmt"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level     DoctorIssueLevel  `json:"level"`
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Container model.ContainerID `json:"container,omitempty"`
	ItemID    string            `json:"itemId,omitempty"`
}

type DoctorReport struct {
	TripID   string        `json:"tripId"`
	Revision int64         `json:"revision"`
	Items    int           `json:"items"`
	Issues   []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

var ErrDoctorIssuesFound = errors.New("doctor found issues")

// Doctor checks the stored layout of a trip against the ordering invariants.
func (s Store) Doctor(ctx context.Context, tripID string) (DoctorReport, error) {
	t, items, err := s.LoadTrip(ctx, tripID)
	if err != nil {
		return DoctorReport{}, err
	}
	return diagnose(t, items), nil
}

func diagnose(t model.Trip, items []model.Item) DoctorReport {
	rep := DoctorReport{
		TripID:   t.ID,
		Revision: t.Revision,
		Items:    len(items),
		Issues:   []DoctorIssue{},
	}
	if err := order.ValidateDayOrder(t.DayOrder, t.DurationDays); err != nil {
		rep.Issues = append(rep.Issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "day_order",
			Message: err.Error(),
		})
	}
	var ie *order.InvariantError
	if err := order.CheckInvariants(items, t.DurationDays); errors.As(err, &ie) {
		for _, v := range ie.Violations {
			rep.Issues = append(rep.Issues, DoctorIssue{
				Level:     DoctorIssueLevelError,
				Code:      string(v.Code),
				Message:   v.Message,
				Container: v.Container,
				ItemID:    v.ItemID,
			})
		}
	}
	counts := map[model.ContainerID]int{}
	for _, it := range items {
		counts[it.ContainerID]++
	}
	for _, c := range order.Containers(t.DurationDays) {
		if c.IsUnscheduled() || counts[c] > 0 {
			continue
		}
		rep.Issues = append(rep.Issues, DoctorIssue{
			Level:     DoctorIssueLevelWarn,
			Code:      "empty_day",
			Message:   fmt.Sprintf("%s has no items", c),
			Container: c,
		})
	}
	return rep
}

// Reindex renormalizes every container of a trip and persists the result. It
// fails when an item sits in a container the trip no longer has.
func (s Store) Reindex(ctx context.Context, actorID, tripID string) (model.Trip, int, error) {
	t, items, err := s.LoadTrip(ctx, tripID)
	if err != nil {
		return model.Trip{}, 0, err
	}
	next, err := order.RenormalizeAll(items, t.DurationDays)
	if err != nil {
		return model.Trip{}, 0, err
	}
	changed := 0
	for i := range items {
		if items[i].Position != next[i].Position {
			changed++
		}
	}
	if changed == 0 {
		return t, 0, nil
	}
	t, err = s.SaveTripState(ctx, actorID, t, next, "trip.reindex", t.ID, map[string]any{"changed": changed})
	if err != nil {
		return model.Trip{}, 0, err
	}
	return t, changed, nil
}
