package order

import (
	"errors"
	"strings"

	"itinerary-cli/internal/model"
)

// Target is what the pointer is over during a drag: either another item or a
// container directly. Exactly one field is set.
type Target struct {
	ItemID    string
	Container model.ContainerID
}

func ItemTarget(id string) Target { return Target{ItemID: id} }
func ContainerTarget(c model.ContainerID) Target { return Target{Container: c} }

func (t Target) IsZero() bool { return t.ItemID == "" && t.Container == "" }

func (t Target) String() string {
	if t.ItemID != "" {
		return t.ItemID
	}
	return string(t.Container)
}

// ParseTarget maps a raw drop-target id onto a Target. Item ids take
// precedence; anything shaped like a container id must be a valid one. An
// empty or unrecognized id yields ok=false.
func ParseTarget(items []model.Item, raw string, durationDays int) (Target, bool, error) {
	if raw == "" {
		return Target{}, false, nil
	}
	if indexOf(items, raw) >= 0 {
		return ItemTarget(raw), true, nil
	}
	if raw == string(model.Unscheduled) || strings.HasPrefix(raw, "day-") {
		c, err := ParseContainerID(raw, durationDays)
		if err != nil {
			return Target{}, false, err
		}
		return ContainerTarget(c), true, nil
	}
	return Target{}, false, nil
}

// Resolution is the outcome of resolving a drop. Position is the insertion
// slot in the destination container; the final dense position is whatever
// renormalization assigns.
type Resolution struct {
	ItemID       string            `json:"itemId"`
	From         model.ContainerID `json:"from"`
	FromPosition int               `json:"fromPosition"`
	Container    model.ContainerID `json:"container"`
	Position     int               `json:"position"`
	NoOp         bool              `json:"noop"`
}

var errMissingTarget = errors.New("missing drop target")

// ResolvePreview returns the container the active item would land in. It
// never computes a position.
func ResolvePreview(items []model.Item, activeID string, t Target, durationDays int) (model.ContainerID, error) {
	if indexOf(items, activeID) < 0 {
		return "", &NotFoundError{Kind: "item", ID: activeID}
	}
	switch {
	case t.ItemID != "":
		oi := indexOf(items, t.ItemID)
		if oi < 0 {
			return "", &NotFoundError{Kind: "item", ID: t.ItemID}
		}
		c := items[oi].ContainerID
		if err := validContainer(c, durationDays); err != nil {
			return "", err
		}
		return c, nil
	case t.Container != "":
		if err := validContainer(t.Container, durationDays); err != nil {
			return "", err
		}
		return t.Container, nil
	default:
		return "", errMissingTarget
	}
}

// ResolveMove computes the destination container and slot for activeID.
//
// Over an item: the item's container. Moving forward (from an earlier index to
// a later one) inserts after the hovered item, moving backward inserts before
// it. Over a container: append after the largest position (0 when empty).
func ResolveMove(items []model.Item, activeID string, t Target, durationDays int) (Resolution, error) {
	ai := indexOf(items, activeID)
	if ai < 0 {
		return Resolution{}, &NotFoundError{Kind: "item", ID: activeID}
	}
	from := items[ai].ContainerID
	if err := validContainer(from, durationDays); err != nil {
		return Resolution{}, err
	}
	fromMembers := members(items, from)
	curIdx := slotOf(fromMembers, ai)

	res := Resolution{
		ItemID:       activeID,
		From:         from,
		FromPosition: items[ai].Position,
	}

	switch {
	case t.ItemID != "":
		if t.ItemID == activeID {
			res.Container = from
			res.Position = curIdx
			res.NoOp = true
			return res, nil
		}
		oi := indexOf(items, t.ItemID)
		if oi < 0 {
			return Resolution{}, &NotFoundError{Kind: "item", ID: t.ItemID}
		}
		to := items[oi].ContainerID
		if err := validContainer(to, durationDays); err != nil {
			return Resolution{}, err
		}
		overIdx := slotOf(members(items, to), oi)
		res.Container = to
		if to == from {
			// After removing the active item the hovered one shifts down by one
			// when moving forward, so both directions land on overIdx.
			res.Position = overIdx
		} else if curIdx < overIdx {
			res.Position = overIdx + 1
		} else {
			res.Position = overIdx
		}
	case t.Container != "":
		to := t.Container
		if err := validContainer(to, durationDays); err != nil {
			return Resolution{}, err
		}
		res.Container = to
		if to == from {
			res.Position = len(fromMembers) - 1
		} else {
			res.Position = nextPosition(items, to)
		}
	default:
		return Resolution{}, errMissingTarget
	}

	res.NoOp = res.Container == from && res.Position == curIdx
	return res, nil
}

// ApplyMove moves the active item to res and shifts its siblings to close the
// gap at the source and open one at the destination. The shift is a hint; the
// touched containers are always renormalized afterwards.
func ApplyMove(items []model.Item, activeID string, res Resolution, durationDays int) ([]model.Item, error) {
	out := model.CloneItems(items)
	if res.NoOp {
		return out, nil
	}
	ai := indexOf(out, activeID)
	if ai < 0 {
		return nil, &NotFoundError{Kind: "item", ID: activeID}
	}
	if err := validContainer(res.Container, durationDays); err != nil {
		return nil, err
	}
	from := out[ai].ContainerID
	if err := validContainer(from, durationDays); err != nil {
		return nil, err
	}

	cur := out[ai].Position
	for i := range out {
		if i != ai && out[i].ContainerID == from && out[i].Position > cur {
			out[i].Position--
		}
	}
	for i := range out {
		if i != ai && out[i].ContainerID == res.Container && out[i].Position >= res.Position {
			out[i].Position++
		}
	}
	out[ai].ContainerID = res.Container
	out[ai].Position = res.Position

	renormalizeInPlace(out, from)
	if res.Container != from {
		renormalizeInPlace(out, res.Container)
	}
	return out, nil
}

// Place applies a committed move intent (item, container, final position) to
// a collection that may not be the one it was resolved against. Positions are
// clamped to the destination's bounds.
func Place(items []model.Item, itemID string, c model.ContainerID, position int, durationDays int) ([]model.Item, error) {
	ai := indexOf(items, itemID)
	if ai < 0 {
		return nil, &NotFoundError{Kind: "item", ID: itemID}
	}
	if err := validContainer(c, durationDays); err != nil {
		return nil, err
	}
	from := items[ai].ContainerID
	work, err := RenormalizeContainer(items, from, durationDays)
	if err != nil {
		return nil, err
	}
	if c != from {
		renormalizeInPlace(work, c)
	}

	limit := len(members(work, c))
	if c != from {
		limit++
	}
	if position < 0 {
		position = 0
	}
	if position > limit-1 {
		position = limit - 1
	}

	res := Resolution{
		ItemID:       itemID,
		From:         from,
		FromPosition: work[ai].Position,
		Container:    c,
		Position:     position,
	}
	res.NoOp = c == from && position == work[ai].Position
	return ApplyMove(work, itemID, res, durationDays)
}

func slotOf(idx []int, i int) int {
	for slot, j := range idx {
		if j == i {
			return slot
		}
	}
	return -1
}

func nextPosition(items []model.Item, c model.ContainerID) int {
	max := -1
	for _, it := range items {
		if it.ContainerID == c && it.Position > max {
			max = it.Position
		}
	}
	return max + 1
}
