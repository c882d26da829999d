package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"itinerary-cli/internal/model"
)

const itemColumns = `id, trip_id, container, position, title, category, notes, start_time, end_time, tags_json, created_at_unixms, updated_at_unixms`

func loadItems(ctx context.Context, q dbtx, tripID string) ([]model.Item, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+itemColumns+` FROM items WHERE trip_id = ? ORDER BY container, position, id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanItem(sc scanner) (model.Item, error) {
	var (
		it        model.Item
		container string
		startTime sql.NullString
		endTime   sql.NullString
		tags      string
		createdMs int64
		updatedMs int64
	)
	if err := sc.Scan(&it.ID, &it.TripID, &container, &it.Position, &it.Title, &it.Category, &it.Notes, &startTime, &endTime, &tags, &createdMs, &updatedMs); err != nil {
		return model.Item{}, err
	}
	it.ContainerID = model.ContainerID(container)
	if startTime.Valid {
		v := startTime.String
		it.StartTime = &v
	}
	if endTime.Valid {
		v := endTime.String
		it.EndTime = &v
	}
	if tags != "" && tags != "[]" {
		if err := json.Unmarshal([]byte(tags), &it.Tags); err != nil {
			return model.Item{}, fmt.Errorf("item %s: decode tags: %w", it.ID, err)
		}
	}
	it.CreatedAt = time.UnixMilli(createdMs).UTC()
	it.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return it, nil
}

func insertItem(ctx context.Context, e execer, tripID string, it model.Item) error {
	tags := "[]"
	if len(it.Tags) > 0 {
		b, err := json.Marshal(it.Tags)
		if err != nil {
			return err
		}
		tags = string(b)
	}
	_, err := e.ExecContext(ctx, `INSERT INTO items(`+itemColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, tripID, string(it.ContainerID), it.Position, it.Title, it.Category, it.Notes,
		nullString(it.StartTime), nullString(it.EndTime), tags,
		it.CreatedAt.UTC().UnixMilli(), it.UpdatedAt.UTC().UnixMilli())
	return err
}

func replaceItems(ctx context.Context, e execer, tripID string, items []model.Item) error {
	if _, err := e.ExecContext(ctx, `DELETE FROM items WHERE trip_id = ?`, tripID); err != nil {
		return err
	}
	for _, it := range items {
		if err := insertItem(ctx, e, tripID, it); err != nil {
			return err
		}
	}
	return nil
}

// updatePlacements writes container/position for every item whose placement
// differs between before and after. It returns the number of rows touched.
func updatePlacements(ctx context.Context, e execer, tripID string, before, after []model.Item, now time.Time) (int, error) {
	prev := make(map[string]model.Item, len(before))
	for _, it := range before {
		prev[it.ID] = it
	}
	n := 0
	for _, it := range after {
		p, ok := prev[it.ID]
		if ok && p.ContainerID == it.ContainerID && p.Position == it.Position {
			continue
		}
		if _, err := e.ExecContext(ctx, `UPDATE items SET container = ?, position = ?, updated_at_unixms = ? WHERE id = ? AND trip_id = ?`,
			string(it.ContainerID), it.Position, now.UnixMilli(), it.ID, tripID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
