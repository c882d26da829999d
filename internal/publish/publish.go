// Package publish exports a trip as Markdown for sharing outside the CLI.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"itinerary-cli/internal/model"
)

type WriteOptions struct {
	IncludeUnscheduled bool
	IncludeNotes       bool
	Overwrite          bool
	// HTML also writes <trip-id>.html next to the Markdown file.
	HTML bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteTrip writes <toDir>/<trip-id>.md and, when asked, its HTML rendering.
func WriteTrip(t model.Trip, items []model.Item, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderTripMarkdown(t, items, RenderOptions{
		IncludeUnscheduled: opt.IncludeUnscheduled,
		IncludeNotes:       opt.IncludeNotes,
	})
	if err != nil {
		return WriteResult{}, err
	}
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(toDir, t.ID+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written := []string{outPath}
	if opt.HTML {
		page, err := RenderHTML(t.Name, md)
		if err != nil {
			return WriteResult{}, err
		}
		htmlPath := filepath.Join(toDir, t.ID+".html")
		if err := writeFile(htmlPath, []byte(page), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, htmlPath)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
