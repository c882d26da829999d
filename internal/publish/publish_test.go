package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"itinerary-cli/internal/model"
)

func strPtr(s string) *string { return &s }

func testTrip() (model.Trip, []model.Item) {
	t := model.Trip{ID: "trip-test", Name: "Lisbon", DurationDays: 2, DayOrder: []int{2, 1}}
	items := []model.Item{
		{ID: "a", ContainerID: model.DayContainer(1), Position: 1, Title: "Pasteis"},
		{ID: "b", ContainerID: model.DayContainer(1), Position: 0, Title: "Belem Tower", Category: "sight", StartTime: strPtr("09:00"), EndTime: strPtr("10:30")},
		{ID: "c", ContainerID: model.Unscheduled, Position: 0, Title: "Fado night", Notes: "Alfama\nbook ahead"},
	}
	return t, items
}

func TestRenderTripMarkdown_FollowsDayOrderAndPositions(t *testing.T) {
	t.Parallel()

	trip, items := testTrip()
	md, err := RenderTripMarkdown(trip, items, RenderOptions{IncludeUnscheduled: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("RenderTripMarkdown: %v", err)
	}

	day2 := strings.Index(md, "## Day 2 (stop 1)")
	day1 := strings.Index(md, "## Day 1 (stop 2)")
	if day2 < 0 || day1 < 0 || day2 > day1 {
		t.Fatalf("expected day 2 before day 1, got:\n%s", md)
	}
	if !strings.Contains(md, "1. Belem Tower (09:00-10:30) `sight`\n2. Pasteis") {
		t.Fatalf("expected day 1 items in position order, got:\n%s", md)
	}
	if !strings.Contains(md, "_Nothing planned._") {
		t.Fatalf("expected empty day placeholder, got:\n%s", md)
	}
	if !strings.Contains(md, "   > book ahead") {
		t.Fatalf("expected notes, got:\n%s", md)
	}

	plain, err := RenderTripMarkdown(trip, items, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderTripMarkdown: %v", err)
	}
	if strings.Contains(plain, "Unscheduled") {
		t.Fatalf("expected unscheduled to be omitted, got:\n%s", plain)
	}
}

func TestWriteTrip_WritesMarkdownAndHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trip, items := testTrip()
	trip.Name = "Lisbon <script>"
	res, err := WriteTrip(trip, items, dir, WriteOptions{HTML: true})
	if err != nil {
		t.Fatalf("WriteTrip: %v", err)
	}
	if len(res.Written) != 2 {
		t.Fatalf("expected md and html written, got %v", res.Written)
	}
	b, err := os.ReadFile(filepath.Join(dir, "trip-test.html"))
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	page := string(b)
	if !strings.Contains(page, "<ol>") || !strings.Contains(page, "Belem Tower") {
		t.Fatalf("expected rendered list, got:\n%s", page)
	}
	if strings.Contains(page, "<script>") {
		t.Fatalf("expected raw html to be escaped, got:\n%s", page)
	}

	if _, err := WriteTrip(trip, items, dir, WriteOptions{}); err == nil {
		t.Fatalf("expected error when file exists without overwrite")
	}
}
