package model

import (
	"strconv"
	"strings"
	"time"
)

// ContainerID names an ordered bucket of items: the unscheduled pseudo-container
// or a single trip day ("day-<n>").
type ContainerID string

const (
	Unscheduled ContainerID = "unscheduled"

	dayPrefix = "day-"
)

// DayContainer returns the container id for trip day n (1-based).
func DayContainer(n int) ContainerID {
	return ContainerID(dayPrefix + strconv.Itoa(n))
}

// Day reports the day number of a day container. It does not range-check n
// against a trip; use order.ParseContainerID for that.
func (c ContainerID) Day() (int, bool) {
	s := string(c)
	if !strings.HasPrefix(s, dayPrefix) {
		return 0, false
	}
	digits := s[len(dayPrefix):]
	if digits == "" || digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (c ContainerID) IsUnscheduled() bool { return c == Unscheduled }

func (c ContainerID) String() string { return string(c) }

type Trip struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DurationDays int       `json:"durationDays"`
	DayOrder     []int     `json:"dayOrder"`
	Revision     int64     `json:"revision"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Item is one itinerary entry. The ordering engine only reads ID, ContainerID
// and Position; the rest is payload.
type Item struct {
	ID          string      `json:"id"`
	TripID      string      `json:"tripId,omitempty"`
	ContainerID ContainerID `json:"containerId"`
	Position    int         `json:"position"`

	Title     string     `json:"title"`
	Category  string     `json:"category,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	StartTime *string    `json:"startTime,omitempty"` // HH:MM
	EndTime   *string    `json:"endTime,omitempty"`   // HH:MM
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// CloneItems returns a deep copy of items, including pointer and slice payload
// fields, so that the copy shares no memory with the original.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func (it Item) Clone() Item {
	c := it
	if it.StartTime != nil {
		v := *it.StartTime
		c.StartTime = &v
	}
	if it.EndTime != nil {
		v := *it.EndTime
		c.EndTime = &v
	}
	if it.DeletedAt != nil {
		v := *it.DeletedAt
		c.DeletedAt = &v
	}
	if it.Tags != nil {
		c.Tags = append([]string(nil), it.Tags...)
	}
	return c
}

type Event struct {
	ID       string    `json:"id"`
	TripID   string    `json:"tripId"`
	TS       time.Time `json:"ts"`
	ActorID  string    `json:"actorId"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
