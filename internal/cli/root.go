package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"itinerary-cli/internal/config"
	"itinerary-cli/internal/format"
	"itinerary-cli/internal/logging"
	"itinerary-cli/internal/model"
	"itinerary-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	DBPath     string
	TripID     string
	ActorID    string
	PrettyJSON bool
	Format     string
	LogLevel   string

	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "itinerary",
		Short:        "Plan trips day by day from the command line",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start a five day trip and make it current
  itinerary trips create "Lisbon" --days 5

  # Collect ideas, then schedule them
  itinerary items add "Tram 28" --category sight
  itinerary items move item-abc123 --over day-2

  # Drop an item just after a sibling, previewing first
  itinerary items move item-abc123 --over item-def456 --dry-run

  # Swap the order days are shown in
  itinerary days reorder day-3 --before day-1
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "Path to the SQLite store (default: nearest .itinerary/ dir, else ~/.local/share/itinerary)")
	cmd.PersistentFlags().StringVar(&app.TripID, "trip", "", "Trip id (default: the trip selected with `trips use`)")
	cmd.PersistentFlags().StringVar(&app.ActorID, "actor", "", "Actor id recorded on events")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn|table)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level on stderr (debug|info|warn|error|off)")

	cmd.AddCommand(newTripsCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newDaysCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newReindexCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// configure fills every flag the user did not pass from config.Load and
// builds the logger.
func (app *App) configure(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return writeErr(cmd, err)
	}
	flags := cmd.Flags()
	fill := func(name string, dst *string, v string) {
		if !flags.Changed(name) {
			*dst = v
		}
	}
	fill("db", &app.DBPath, cfg.DBPath)
	fill("trip", &app.TripID, cfg.TripID)
	fill("actor", &app.ActorID, cfg.Actor)
	fill("format", &app.Format, cfg.Format)
	fill("log-level", &app.LogLevel, cfg.LogLevel)
	if !flags.Changed("pretty") {
		app.PrettyJSON = cfg.Pretty
	}

	switch app.Format {
	case "json", "edn", "table":
	default:
		return writeErr(cmd, fmt.Errorf("unknown format: %s (expected json|edn|table)", app.Format))
	}

	l, err := logging.New(app.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = l
	return nil
}

func (app *App) logger() *zap.Logger {
	if app.log == nil {
		return zap.NewNop()
	}
	return app.log
}

func openStore(app *App) (store.Store, error) {
	path := strings.TrimSpace(app.DBPath)
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if p, ok := store.DiscoverPath(wd); ok {
				path = p
			}
		}
	}
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return store.Store{}, err
		}
		path = p
	}
	app.DBPath = path
	return store.Store{Path: path, Logger: app.logger()}, nil
}

func currentTripID(ctx context.Context, app *App, s store.Store) (string, error) {
	if id := strings.TrimSpace(app.TripID); id != "" {
		return id, nil
	}
	return s.CurrentTripID(ctx)
}

// loadTrip opens the store and loads the selected trip with its items.
func loadTrip(cmd *cobra.Command, app *App) (store.Store, model.Trip, []model.Item, error) {
	s, err := openStore(app)
	if err != nil {
		return store.Store{}, model.Trip{}, nil, err
	}
	ctx := cmd.Context()
	id, err := currentTripID(ctx, app, s)
	if err != nil {
		return s, model.Trip{}, nil, err
	}
	t, items, err := s.LoadTrip(ctx, id)
	if err != nil {
		return s, model.Trip{}, nil, err
	}
	return s, t, items, nil
}

func currentActorID(app *App) (string, error) {
	if id := strings.TrimSpace(app.ActorID); id != "" {
		return id, nil
	}
	return "", errors.New("no actor; pass --actor or set ITINERARY_ACTOR")
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
