package order

import (
	"sort"
	"testing"

	"itinerary-cli/internal/model"
)

func it(id string, c model.ContainerID, pos int) model.Item {
	return model.Item{ID: id, ContainerID: c, Position: pos, Title: id}
}

func day(n int) model.ContainerID { return model.DayContainer(n) }

func idsOf(t *testing.T, items []model.Item, c model.ContainerID) []string {
	t.Helper()
	return ContainerIDs(items, c)
}

func positionsOf(items []model.Item, c model.ContainerID) []int {
	var out []int
	for _, x := range items {
		if x.ContainerID == c {
			out = append(out, x.Position)
		}
	}
	sort.Ints(out)
	return out
}

func sortedIDs(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, x := range items {
		out = append(out, x.ID)
	}
	sort.Strings(out)
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
