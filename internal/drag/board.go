package drag

import (
	"context"
	"sync"

	"itinerary-cli/internal/model"
)

// Board is the host-owned state the controller reads and writes: the item
// collection and the display order of the trip's days.
type Board interface {
	Items() []model.Item
	SetItems([]model.Item)
	DayOrder() []int
	SetDayOrder([]int)
}

// Gateway persists committed intents. A non-nil error means the intent was
// not recorded and the caller must roll back.
type Gateway interface {
	ItemMoved(ctx context.Context, itemID string, container model.ContainerID, position int) error
	SectionsReordered(ctx context.Context, dayOrder []int) error
}

// GatewayFuncs adapts plain functions to Gateway. A nil func succeeds.
type GatewayFuncs struct {
	ItemMovedFunc         func(ctx context.Context, itemID string, container model.ContainerID, position int) error
	SectionsReorderedFunc func(ctx context.Context, dayOrder []int) error
}

func (g GatewayFuncs) ItemMoved(ctx context.Context, itemID string, container model.ContainerID, position int) error {
	if g.ItemMovedFunc == nil {
		return nil
	}
	return g.ItemMovedFunc(ctx, itemID, container, position)
}

func (g GatewayFuncs) SectionsReordered(ctx context.Context, dayOrder []int) error {
	if g.SectionsReorderedFunc == nil {
		return nil
	}
	return g.SectionsReorderedFunc(ctx, dayOrder)
}

// MemoryBoard is a Board backed by plain slices. Reads and writes copy.
type MemoryBoard struct {
	mu       sync.Mutex
	items    []model.Item
	dayOrder []int
}

func NewMemoryBoard(items []model.Item, dayOrder []int) *MemoryBoard {
	return &MemoryBoard{
		items:    model.CloneItems(items),
		dayOrder: append([]int(nil), dayOrder...),
	}
}

func (b *MemoryBoard) Items() []model.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.CloneItems(b.items)
}

func (b *MemoryBoard) SetItems(items []model.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = model.CloneItems(items)
}

func (b *MemoryBoard) DayOrder() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.dayOrder...)
}

func (b *MemoryBoard) SetDayOrder(dayOrder []int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dayOrder = append([]int(nil), dayOrder...)
}
