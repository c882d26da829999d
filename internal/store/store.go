package store

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const dbFileName = "itinerary.sqlite"

var (
	ErrTripNotFound   = errors.New("trip not found")
	ErrNoCurrentTrip  = errors.New("no current trip; pass --trip or run `itinerary trips use <trip-id>`")
	ErrItemNotInTrip  = errors.New("item does not belong to trip")
	ErrInvalidDayPlan = errors.New("invalid day count")
)

// Store is a SQLite-backed itinerary store. The zero Logger is a no-op.
type Store struct {
	Path   string
	Logger *zap.Logger
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "itinerary", dbFileName), nil
}

// DiscoverPath walks up from start looking for a project-local .itinerary dir.
func DiscoverPath(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".itinerary")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return filepath.Join(candidate, dbFileName), true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (s Store) Ensure() error {
	return os.MkdirAll(filepath.Dir(filepath.Clean(s.Path)), 0o755)
}

func (s Store) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
