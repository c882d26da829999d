package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"

	"go.uber.org/zap"
)

// Gateway persists committed drag intents for one trip. It implements
// drag.Gateway.
//
// Each call replays the intent against the stored items inside a single
// transaction, so a move resolved against a stale local copy still lands in
// a dense, valid layout.
type Gateway struct {
	Store   Store
	TripID  string
	ActorID string

	// Now defaults to time.Now.
	Now func() time.Time
}

func (g Gateway) now() time.Time {
	if g.Now != nil {
		return g.Now().UTC()
	}
	return time.Now().UTC()
}

func (g Gateway) ItemMoved(ctx context.Context, itemID string, container model.ContainerID, position int) error {
	db, err := g.Store.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTrip(ctx, tx, g.TripID)
	if err != nil {
		return err
	}
	before, err := loadItems(ctx, tx, t.ID)
	if err != nil {
		return err
	}
	from, fromPos, ok := order.Locate(before, itemID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotInTrip, itemID)
	}
	after, err := order.Place(before, itemID, container, position, t.DurationDays)
	if err != nil {
		return err
	}
	if err := order.CheckInvariants(after, t.DurationDays); err != nil {
		return err
	}
	_, finalPos, _ := order.Locate(after, itemID)

	now := g.now()
	touched, err := updatePlacements(ctx, tx, t.ID, before, after, now)
	if err != nil {
		return err
	}
	if touched == 0 {
		return tx.Commit()
	}
	t.Revision++
	t.UpdatedAt = now
	if err := updateTrip(ctx, tx, t); err != nil {
		return err
	}
	payload := map[string]any{
		"from":         string(from),
		"fromPosition": fromPos,
		"to":           string(container),
		"position":     finalPos,
		"touched":      touched,
	}
	if err := appendEvent(ctx, tx, t, g.ActorID, "item.move", itemID, payload, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	g.Store.logger().Info("item move persisted",
		zap.String("trip", t.ID),
		zap.String("item", itemID),
		zap.String("to", string(container)),
		zap.Int("position", finalPos),
		zap.Int64("revision", t.Revision))
	return nil
}

func (g Gateway) SectionsReordered(ctx context.Context, dayOrder []int) error {
	db, err := g.Store.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTrip(ctx, tx, g.TripID)
	if err != nil {
		return err
	}
	if err := order.ValidateDayOrder(dayOrder, t.DurationDays); err != nil {
		return err
	}
	if order.SameDayOrder(t.DayOrder, dayOrder) {
		return tx.Commit()
	}
	prev := t.DayOrder
	now := g.now()
	t.DayOrder = append([]int(nil), dayOrder...)
	t.Revision++
	t.UpdatedAt = now
	if err := updateTrip(ctx, tx, t); err != nil {
		return err
	}
	payload := map[string]any{"from": prev, "to": t.DayOrder}
	if err := appendEvent(ctx, tx, t, g.ActorID, "day.reorder", t.ID, payload, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	g.Store.logger().Info("day order persisted",
		zap.String("trip", t.ID),
		zap.Ints("dayOrder", t.DayOrder),
		zap.Int64("revision", t.Revision))
	return nil
}
