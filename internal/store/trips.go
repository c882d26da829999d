package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"

	"go.uber.org/zap"
)

type dbtx interface {
	queryRower
	execer
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s Store) CreateTrip(ctx context.Context, actorID, name string, durationDays int, now time.Time) (model.Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Trip{}, errors.New("missing trip name")
	}
	if durationDays < 1 {
		return model.Trip{}, fmt.Errorf("%w: %d", ErrInvalidDayPlan, durationDays)
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Trip{}, err
	}
	defer db.Close()

	id, err := newRandomID("trip")
	if err != nil {
		return model.Trip{}, err
	}
	now = now.UTC()
	t := model.Trip{
		ID:           id,
		Name:         name,
		DurationDays: durationDays,
		DayOrder:     order.DefaultDayOrder(durationDays),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Trip{}, err
	}
	defer func() { _ = tx.Rollback() }()

	dayOrder, _ := json.Marshal(t.DayOrder)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO trips(id, name, duration_days, day_order_json, revision, created_at_unixms, updated_at_unixms)
		VALUES(?, ?, ?, ?, 0, ?, ?)
	`, t.ID, t.Name, t.DurationDays, string(dayOrder), now.UnixMilli(), now.UnixMilli()); err != nil {
		return model.Trip{}, err
	}
	if err := appendEvent(ctx, tx, t, actorID, "trip.create", t.ID, map[string]any{"name": t.Name, "durationDays": durationDays}, now); err != nil {
		return model.Trip{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Trip{}, err
	}
	return t, nil
}

func (s Store) ListTrips(ctx context.Context) ([]model.Trip, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, duration_days, day_order_json, revision, created_at_unixms, updated_at_unixms
		FROM trips ORDER BY created_at_unixms, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// LoadTrip returns the trip and its items in array order (container, position, id).
func (s Store) LoadTrip(ctx context.Context, tripID string) (model.Trip, []model.Item, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Trip{}, nil, err
	}
	defer db.Close()

	t, err := getTrip(ctx, db, tripID)
	if err != nil {
		return model.Trip{}, nil, err
	}
	items, err := loadItems(ctx, db, tripID)
	if err != nil {
		return model.Trip{}, nil, err
	}
	return t, items, nil
}

// SaveTripState replaces the trip row and all of its items in one transaction,
// bumps the revision and records an event. The item set must satisfy the
// ordering invariants for the trip's day count.
func (s Store) SaveTripState(ctx context.Context, actorID string, t model.Trip, items []model.Item, eventType, entityID string, payload any) (model.Trip, error) {
	if err := order.CheckInvariants(items, t.DurationDays); err != nil {
		return model.Trip{}, err
	}
	if err := order.ValidateDayOrder(t.DayOrder, t.DurationDays); err != nil {
		return model.Trip{}, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Trip{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Trip{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := getTrip(ctx, tx, t.ID)
	if err != nil {
		return model.Trip{}, err
	}
	now := time.Now().UTC()
	t.Revision = cur.Revision + 1
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = now
	if err := updateTrip(ctx, tx, t); err != nil {
		return model.Trip{}, err
	}
	if err := replaceItems(ctx, tx, t.ID, items); err != nil {
		return model.Trip{}, err
	}
	if err := appendEvent(ctx, tx, t, actorID, eventType, entityID, payload, now); err != nil {
		return model.Trip{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Trip{}, err
	}
	s.logger().Debug("trip state saved",
		zap.String("trip", t.ID),
		zap.String("event", eventType),
		zap.Int64("revision", t.Revision),
		zap.Int("items", len(items)))
	return t, nil
}

func getTrip(ctx context.Context, q queryRower, tripID string) (model.Trip, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, name, duration_days, day_order_json, revision, created_at_unixms, updated_at_unixms
		FROM trips WHERE id = ?
	`, strings.TrimSpace(tripID))
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trip{}, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}
	return t, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(sc scanner) (model.Trip, error) {
	var (
		t         model.Trip
		dayOrder  string
		createdMs int64
		updatedMs int64
	)
	if err := sc.Scan(&t.ID, &t.Name, &t.DurationDays, &dayOrder, &t.Revision, &createdMs, &updatedMs); err != nil {
		return model.Trip{}, err
	}
	if err := json.Unmarshal([]byte(dayOrder), &t.DayOrder); err != nil {
		return model.Trip{}, fmt.Errorf("trip %s: decode day order: %w", t.ID, err)
	}
	t.CreatedAt = time.UnixMilli(createdMs).UTC()
	t.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return t, nil
}

func updateTrip(ctx context.Context, e execer, t model.Trip) error {
	dayOrder, err := json.Marshal(t.DayOrder)
	if err != nil {
		return err
	}
	res, err := e.ExecContext(ctx, `
		UPDATE trips SET name = ?, duration_days = ?, day_order_json = ?, revision = ?, updated_at_unixms = ?
		WHERE id = ?
	`, t.Name, t.DurationDays, string(dayOrder), t.Revision, t.UpdatedAt.UnixMilli(), t.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrTripNotFound, t.ID)
	}
	return nil
}
