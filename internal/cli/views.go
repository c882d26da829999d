package cli

import (
	"strconv"
	"strings"

	"itinerary-cli/internal/model"
	"itinerary-cli/internal/order"
)

type tripRows []model.Trip

func (r tripRows) TableHeader() []string { return []string{"ID", "NAME", "DAYS", "REVISION"} }

func (r tripRows) TableRows() [][]string {
	out := make([][]string, 0, len(r))
	for _, t := range r {
		out = append(out, []string{t.ID, t.Name, strconv.Itoa(t.DurationDays), strconv.FormatInt(t.Revision, 10)})
	}
	return out
}

type itemRows []model.Item

func (r itemRows) TableHeader() []string {
	return []string{"CONTAINER", "POS", "ID", "TITLE", "CATEGORY"}
}

func (r itemRows) TableRows() [][]string {
	out := make([][]string, 0, len(r))
	for _, it := range r {
		out = append(out, []string{string(it.ContainerID), strconv.Itoa(it.Position), it.ID, it.Title, it.Category})
	}
	return out
}

// section is one container of a trip as shown to the user.
type section struct {
	Container model.ContainerID `json:"container"`
	Day       int               `json:"day,omitempty"`
	Items     []model.Item      `json:"items"`
}

type sectionRows []section

func (r sectionRows) TableHeader() []string { return []string{"CONTAINER", "ITEMS", "TITLES"} }

func (r sectionRows) TableRows() [][]string {
	out := make([][]string, 0, len(r))
	for _, s := range r {
		titles := make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			titles = append(titles, it.Title)
		}
		out = append(out, []string{string(s.Container), strconv.Itoa(len(s.Items)), strings.Join(titles, ", ")})
	}
	return out
}

// sections lists unscheduled first and then the days in the trip's display order.
func sections(t model.Trip, items []model.Item) sectionRows {
	out := sectionRows{{Container: model.Unscheduled, Items: order.ContainerItems(items, model.Unscheduled)}}
	for _, d := range t.DayOrder {
		c := model.DayContainer(d)
		out = append(out, section{Container: c, Day: d, Items: order.ContainerItems(items, c)})
	}
	return out
}

// displayItems flattens sections into display order.
func displayItems(t model.Trip, items []model.Item) itemRows {
	out := make(itemRows, 0, len(items))
	for _, s := range sections(t, items) {
		out = append(out, s.Items...)
	}
	return out
}

// layoutLines renders one line per item in display order, for diffs.
func layoutLines(t model.Trip, items []model.Item) []string {
	var lines []string
	for _, s := range sections(t, items) {
		lines = append(lines, string(s.Container)+":\n")
		for _, it := range s.Items {
			lines = append(lines, "  "+strconv.Itoa(it.Position)+" "+it.ID+" "+it.Title+"\n")
		}
	}
	return lines
}
