package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"itinerary-cli/internal/model"

	"github.com/google/uuid"
)

func appendEvent(ctx context.Context, tx dbtx, t model.Trip, actorID, typ, entityID string, payload any, now time.Time) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return formatErrEventContract("missing type")
	}
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return formatErrEventContract("missing entity id")
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return formatErrEventContract("missing actor id")
	}
	replicaID, _, err := getMeta(ctx, tx, "replica_id")
	if err != nil {
		return err
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO events(event_id, trip_id, replica_id, trip_revision, actor_id, type, entity_id, payload_json, issued_at_unixms)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), t.ID, replicaID, t.Revision, actorID, typ, entityID, string(pb), now.UTC().UnixMilli())
	return err
}

// ListEvents returns the newest events of a trip first. limit <= 0 means all.
func (s Store) ListEvents(ctx context.Context, tripID string, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, trip_id, actor_id, type, entity_id, payload_json, issued_at_unixms
		FROM events WHERE trip_id = ? ORDER BY issued_at_unixms DESC, trip_revision DESC`
	args := []any{tripID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var (
			ev      model.Event
			payload string
			ms      int64
		)
		if err := rows.Scan(&ev.ID, &ev.TripID, &ev.ActorID, &ev.Type, &ev.EntityID, &payload, &ms); err != nil {
			return nil, err
		}
		var p any
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, err
		}
		ev.Payload = p
		ev.TS = time.UnixMilli(ms).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}

type errEventContract struct{ msg string }

func (e errEventContract) Error() string { return "event contract: " + e.msg }

func formatErrEventContract(msg string) error { return errEventContract{msg: msg} }
