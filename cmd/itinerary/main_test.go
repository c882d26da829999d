package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewriteItemShorthand(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{
			in:   []string{"itinerary", "item-abc", "--over", "day-1"},
			want: []string{"itinerary", "items", "move", "item-abc", "--over", "day-1"},
		},
		{
			in:   []string{"itinerary", "--db", "x.sqlite", "item-abc", "--over", "unscheduled"},
			want: []string{"itinerary", "--db", "x.sqlite", "items", "move", "item-abc", "--over", "unscheduled"},
		},
		{
			in:   []string{"itinerary", "items", "list"},
			want: []string{"itinerary", "items", "list"},
		},
		{
			in:   []string{"itinerary", "--pretty"},
			want: []string{"itinerary", "--pretty"},
		},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, rewriteItemShorthand(tc.in)); diff != "" {
			t.Fatalf("rewrite %v (-want +got):\n%s", tc.in, diff)
		}
	}
}
