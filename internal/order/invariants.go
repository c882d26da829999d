package order

import (
	"fmt"

	"itinerary-cli/internal/model"
)

type ViolationCode string

const (
	ViolationEmptyID           ViolationCode = "empty_id"
	ViolationDuplicateID       ViolationCode = "duplicate_id"
	ViolationInvalidContainer  ViolationCode = "invalid_container"
	ViolationNegativePosition  ViolationCode = "negative_position"
	ViolationDuplicatePosition ViolationCode = "duplicate_position"
	ViolationPositionGap       ViolationCode = "position_gap"
)

type Violation struct {
	Code      ViolationCode     `json:"code"`
	Container model.ContainerID `json:"container,omitempty"`
	ItemID    string            `json:"itemId,omitempty"`
	Position  int               `json:"position"`
	Message   string            `json:"message"`
}

type InvariantError struct {
	Violations []Violation
}

func (e *InvariantError) Error() string {
	if len(e.Violations) == 0 {
		return "invariant violated"
	}
	if len(e.Violations) == 1 {
		return "invariant violated: " + e.Violations[0].Message
	}
	return fmt.Sprintf("invariant violated: %s (and %d more)", e.Violations[0].Message, len(e.Violations)-1)
}

// CheckInvariants verifies that ids are unique, every item lives in a valid
// container, and each container's positions are exactly {0..k-1}.
func CheckInvariants(items []model.Item, durationDays int) error {
	var vs []Violation

	seenID := map[string]bool{}
	for _, it := range items {
		if it.ID == "" {
			vs = append(vs, Violation{Code: ViolationEmptyID, Container: it.ContainerID, Position: it.Position, Message: "item with empty id"})
			continue
		}
		if seenID[it.ID] {
			vs = append(vs, Violation{Code: ViolationDuplicateID, ItemID: it.ID, Container: it.ContainerID, Position: it.Position, Message: "duplicate item id " + it.ID})
		}
		seenID[it.ID] = true
		if err := validContainer(it.ContainerID, durationDays); err != nil {
			vs = append(vs, Violation{Code: ViolationInvalidContainer, ItemID: it.ID, Container: it.ContainerID, Position: it.Position, Message: fmt.Sprintf("item %s: %v", it.ID, err)})
		}
	}

	for _, c := range Containers(durationDays) {
		idx := members(items, c)
		k := len(idx)
		seenPos := map[int]string{}
		for _, i := range idx {
			it := items[i]
			p := it.Position
			switch {
			case p < 0:
				vs = append(vs, Violation{Code: ViolationNegativePosition, Container: c, ItemID: it.ID, Position: p, Message: fmt.Sprintf("%s: item %s has negative position %d", c, it.ID, p)})
			case seenPos[p] != "":
				vs = append(vs, Violation{Code: ViolationDuplicatePosition, Container: c, ItemID: it.ID, Position: p, Message: fmt.Sprintf("%s: items %s and %s share position %d", c, seenPos[p], it.ID, p)})
			case p >= k:
				vs = append(vs, Violation{Code: ViolationPositionGap, Container: c, ItemID: it.ID, Position: p, Message: fmt.Sprintf("%s: item %s at position %d leaves a gap (%d items)", c, it.ID, p, k)})
			}
			if p >= 0 && seenPos[p] == "" {
				seenPos[p] = it.ID
			}
		}
	}

	if len(vs) == 0 {
		return nil
	}
	return &InvariantError{Violations: vs}
}
