package publish

import (
	"bytes"
	"fmt"
	"strings"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"
)

type RenderOptions struct {
	IncludeUnscheduled bool
	IncludeNotes       bool
}

// RenderTripMarkdown renders the trip as one document: a section per day in
// display order, items in position order, then the unscheduled ideas.
func RenderTripMarkdown(t model.Trip, items []model.Item, opt RenderOptions) (string, error) {
	if err := order.ValidateDayOrder(t.DayOrder, t.DurationDays); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(t.Name))
	writeLn("")
	writeLn(fmt.Sprintf("%d days, %d items.", t.DurationDays, len(items)))

	for i, d := range t.DayOrder {
		writeLn("")
		writeLn(fmt.Sprintf("## Day %d (stop %d)", d, i+1))
		writeLn("")
		writeItems(writeLn, order.ContainerItems(items, model.DayContainer(d)), opt)
	}

	if opt.IncludeUnscheduled {
		writeLn("")
		writeLn("## Unscheduled")
		writeLn("")
		writeItems(writeLn, order.ContainerItems(items, model.Unscheduled), opt)
	}
	return buf.String(), nil
}

func writeItems(writeLn func(string), items []model.Item, opt RenderOptions) {
	if len(items) == 0 {
		writeLn("_Nothing planned._")
		return
	}
	for i, it := range items {
		line := fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(it.Title))
		if when := timeRange(it); when != "" {
			line += " (" + when + ")"
		}
		if c := strings.TrimSpace(it.Category); c != "" {
			line += " `" + c + "`"
		}
		writeLn(line)
		if opt.IncludeNotes && strings.TrimSpace(it.Notes) != "" {
			for _, l := range strings.Split(strings.TrimSpace(it.Notes), "\n") {
				writeLn("   > " + l)
			}
		}
	}
}

func timeRange(it model.Item) string {
	switch {
	case it.StartTime != nil && it.EndTime != nil:
		return *it.StartTime + "-" + *it.EndTime
	case it.StartTime != nil:
		return "from " + *it.StartTime
	case it.EndTime != nil:
		return "until " + *it.EndTime
	}
	return ""
}
