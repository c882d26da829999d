package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mitchellh/go-homedir"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFrom_DefaultsWhenNothingConfigured(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadFrom(Sources{Dir: home, HomeDir: home, LookupEnv: envMap(nil)})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_Precedence(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "itinerary", "config.yaml"), "db_path: /yaml/db.sqlite\nactor: yaml-actor\nformat: table\nlog_level: debug\n")

	project := filepath.Join(home, "trips", "lisbon")
	writeFile(t, filepath.Join(home, "trips", ".env.local"), "ITINERARY_ACTOR=dotenv-actor\nITINERARY_TRIP=trip-dotenv\nITINERARY_PRETTY=true\n")
	if err := os.MkdirAll(project, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := LoadFrom(Sources{
		Dir:       project,
		HomeDir:   home,
		LookupEnv: envMap(map[string]string{"ITINERARY_TRIP": "trip-env"}),
	})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	want := Config{
		DBPath:   "/yaml/db.sqlite",
		Actor:    "dotenv-actor",
		TripID:   "trip-env",
		Format:   "table",
		Pretty:   true,
		LogLevel: "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_RejectsBadInput(t *testing.T) {
	home := t.TempDir()
	if _, err := LoadFrom(Sources{Dir: home, HomeDir: home, LookupEnv: envMap(map[string]string{"ITINERARY_PRETTY": "sometimes"})}); err == nil {
		t.Fatalf("expected error for bad ITINERARY_PRETTY")
	}

	writeFile(t, filepath.Join(home, ".config", "itinerary", "config.yaml"), "actor: [unterminated\n")
	if _, err := LoadFrom(Sources{Dir: home, HomeDir: home, LookupEnv: envMap(nil)}); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestLoadFrom_ExpandsHomeInDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg, err := LoadFrom(Sources{Dir: home, HomeDir: home, LookupEnv: envMap(map[string]string{"ITINERARY_DB": "~/trips/db.sqlite"})})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if want := filepath.Join(home, "trips", "db.sqlite"); cfg.DBPath != want {
		t.Fatalf("expected %q, got %q", want, cfg.DBPath)
	}
}
