// Package drag drives one drag gesture at a time over a Board: pick up an
// item, hover containers and sibling items, drop, then persist through a
// Gateway and roll back to the pick-up snapshot when persistence fails.
package drag

import (
	"context"
	"fmt"
	"sync"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"

	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Active
	Hovering
	Committing
	RollingBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Hovering:
		return "hovering"
	case Committing:
		return "committing"
	case RollingBack:
		return "rolling_back"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type OutcomeKind string

const (
	// OutcomeIgnored: the signal arrived in a state that cannot accept it.
	OutcomeIgnored    OutcomeKind = "ignored"
	OutcomeDiscarded  OutcomeKind = "discarded"
	OutcomeNoOp       OutcomeKind = "noop"
	OutcomeCommitted  OutcomeKind = "committed"
	OutcomeRolledBack OutcomeKind = "rolled_back"
)

type Outcome struct {
	Kind      OutcomeKind       `json:"kind"`
	ItemID    string            `json:"itemId,omitempty"`
	From      model.ContainerID `json:"from,omitempty"`
	Container model.ContainerID `json:"container,omitempty"`
	Position  int               `json:"position"`
	DayOrder  []int             `json:"dayOrder,omitempty"`
	Err       error             `json:"-"`
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRollbackNotifier registers fn to be called once each time a commit fails
// and state has been restored.
func WithRollbackNotifier(fn func(error)) Option {
	return func(c *Controller) { c.notify = fn }
}

// Controller is the drag session state machine. It is safe for concurrent
// use; the lock is released while a Gateway call is in flight so that stray
// signals arriving meanwhile are observed and ignored.
type Controller struct {
	board        Board
	gateway      Gateway
	durationDays int
	log          *zap.Logger
	notify       func(error)

	mu       sync.Mutex
	state    State
	activeID string
	hovered  order.Target
	snapshot []model.Item // non-nil iff a gesture is in progress
	sections bool         // section reorder commit in flight
}

func New(board Board, gateway Gateway, durationDays int, opts ...Option) *Controller {
	c := &Controller{
		board:        board,
		gateway:      gateway,
		durationDays: durationDays,
		log:          zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

func (c *Controller) Hovered() order.Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

func (c *Controller) HasSnapshot() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot != nil
}

// Start picks up itemID. It returns false without error when another gesture
// or commit is still in flight.
func (c *Controller) Start(itemID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Idle || c.sections {
		c.log.Warn("ignoring gesture start while busy",
			zap.String("item", itemID),
			zap.Stringer("state", c.state),
			zap.String("active", c.activeID))
		return false, nil
	}
	items := c.board.Items()
	if _, ok := order.Find(items, itemID); !ok {
		return false, &order.NotFoundError{Kind: "item", ID: itemID}
	}
	c.snapshot = model.CloneItems(items)
	c.activeID = itemID
	c.hovered = order.Target{}
	c.transition(Active)
	return true, nil
}

// Move reports what the pointer is over ("" for nothing). Over a recognized
// target the active item is previewed in that container; its position is
// left alone until the drop.
func (c *Controller) Move(over string) (model.ContainerID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Active && c.state != Hovering {
		c.log.Warn("ignoring gesture move outside a gesture", zap.String("over", over), zap.Stringer("state", c.state))
		return "", nil
	}

	items := c.board.Items()
	tg, ok, err := order.ParseTarget(items, over, c.durationDays)
	if err != nil {
		return "", err
	}
	if !ok {
		c.hovered = order.Target{}
		c.transition(Active)
		return "", nil
	}

	preview, err := order.ResolvePreview(items, c.activeID, tg, c.durationDays)
	if err != nil {
		return "", err
	}
	for i := range items {
		if items[i].ID == c.activeID && items[i].ContainerID != preview {
			items[i].ContainerID = preview
			c.board.SetItems(items)
			break
		}
	}
	c.hovered = tg
	c.transition(Hovering)
	return preview, nil
}

// End drops the active item over over ("" for nothing) and, when the drop
// changes something, persists it. Persistence failures are reported through
// the returned Outcome (kind rolled_back) and the rollback notifier; the
// error return is reserved for invalid input.
func (c *Controller) End(ctx context.Context, over string) (Outcome, error) {
	c.mu.Lock()

	if c.state != Active && c.state != Hovering {
		st := c.state
		c.mu.Unlock()
		c.log.Warn("ignoring gesture end outside a gesture", zap.String("over", over), zap.Stringer("state", st))
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	activeID := c.activeID
	snap := c.snapshot

	tg, ok, err := order.ParseTarget(c.board.Items(), over, c.durationDays)
	if err != nil {
		c.restoreLocked()
		c.mu.Unlock()
		return Outcome{}, err
	}
	if !ok {
		c.restoreLocked()
		c.mu.Unlock()
		return Outcome{Kind: OutcomeDiscarded, ItemID: activeID}, nil
	}

	// Resolve against the pick-up snapshot: previews only moved the container.
	res, err := order.ResolveMove(snap, activeID, tg, c.durationDays)
	if err != nil {
		c.restoreLocked()
		c.mu.Unlock()
		return Outcome{}, err
	}
	if res.NoOp {
		c.restoreLocked()
		c.mu.Unlock()
		return Outcome{Kind: OutcomeNoOp, ItemID: activeID, From: res.From, Container: res.Container, Position: res.FromPosition}, nil
	}

	next, err := order.ApplyMove(snap, activeID, res, c.durationDays)
	if err == nil {
		err = order.CheckInvariants(next, c.durationDays)
	}
	if err != nil {
		c.restoreLocked()
		c.mu.Unlock()
		return Outcome{}, fmt.Errorf("apply move %s: %w", activeID, err)
	}
	container, position, _ := order.Locate(next, activeID)
	out := Outcome{ItemID: activeID, From: res.From, Container: container, Position: position}

	c.board.SetItems(next)
	c.transition(Committing)
	c.mu.Unlock()

	gerr := c.gateway.ItemMoved(ctx, activeID, container, position)

	c.mu.Lock()
	if gerr == nil {
		c.finishLocked()
		c.mu.Unlock()
		out.Kind = OutcomeCommitted
		return out, nil
	}
	c.transition(RollingBack)
	c.board.SetItems(snap)
	c.finishLocked()
	c.mu.Unlock()

	c.log.Error("item move rejected; restored snapshot",
		zap.String("item", activeID),
		zap.String("container", string(container)),
		zap.Int("position", position),
		zap.Error(gerr))
	if c.notify != nil {
		c.notify(gerr)
	}
	out.Kind = OutcomeRolledBack
	out.Err = gerr
	return out, nil
}

// Cancel aborts the gesture and restores the pick-up snapshot. Once the commit
// has been issued it can no longer be cancelled and Cancel returns false.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Active, Hovering:
		c.restoreLocked()
		return true
	case Committing, RollingBack:
		c.log.Warn("ignoring cancel after commit was issued", zap.String("item", c.activeID))
	}
	return false
}

// ReorderSections moves a day before another in the board's day order and
// persists it. Item positions are never touched.
func (c *Controller) ReorderSections(ctx context.Context, moved, target model.ContainerID) (Outcome, error) {
	c.mu.Lock()
	if c.state != Idle || c.sections {
		st := c.state
		c.mu.Unlock()
		c.log.Warn("ignoring section reorder while busy", zap.Stringer("state", st))
		return Outcome{Kind: OutcomeIgnored}, nil
	}
	prev := c.board.DayOrder()
	next, err := order.ResolveSectionReorder(prev, moved, target)
	if err != nil {
		c.mu.Unlock()
		return Outcome{}, err
	}
	if order.SameDayOrder(prev, next) {
		c.mu.Unlock()
		return Outcome{Kind: OutcomeNoOp, DayOrder: prev}, nil
	}
	c.board.SetDayOrder(next)
	c.sections = true
	c.mu.Unlock()

	gerr := c.gateway.SectionsReordered(ctx, next)

	c.mu.Lock()
	c.sections = false
	if gerr == nil {
		c.mu.Unlock()
		c.log.Debug("day order committed", zap.Ints("dayOrder", next))
		return Outcome{Kind: OutcomeCommitted, DayOrder: next}, nil
	}
	c.board.SetDayOrder(prev)
	c.mu.Unlock()

	c.log.Error("day reorder rejected; restored previous order", zap.Ints("dayOrder", next), zap.Error(gerr))
	if c.notify != nil {
		c.notify(gerr)
	}
	return Outcome{Kind: OutcomeRolledBack, DayOrder: prev, Err: gerr}, nil
}

func (c *Controller) restoreLocked() {
	if c.snapshot != nil {
		c.board.SetItems(c.snapshot)
	}
	c.finishLocked()
}

func (c *Controller) finishLocked() {
	c.transition(Idle)
	c.snapshot = nil
	c.activeID = ""
	c.hovered = order.Target{}
}

func (c *Controller) transition(to State) {
	if c.state == to {
		return
	}
	c.log.Debug("drag transition",
		zap.Stringer("from", c.state),
		zap.Stringer("to", to),
		zap.String("item", c.activeID))
	c.state = to
}
