package order

import (
	"fmt"
	"strconv"

	"itinerary-cli/internal/model"
)

// DefaultDayOrder returns [1..n].
func DefaultDayOrder(n int) []int {
	out := make([]int, 0, n)
	for d := 1; d <= n; d++ {
		out = append(out, d)
	}
	return out
}

// ValidateDayOrder checks that dayOrder is a permutation of 1..n.
func ValidateDayOrder(dayOrder []int, n int) error {
	if len(dayOrder) != n {
		return fmt.Errorf("day order has %d entries; want %d", len(dayOrder), n)
	}
	seen := make(map[int]bool, n)
	for _, d := range dayOrder {
		if d < 1 || d > n {
			return fmt.Errorf("day order entry %d out of range 1..%d", d, n)
		}
		if seen[d] {
			return fmt.Errorf("day order repeats day %d", d)
		}
		seen[d] = true
	}
	return nil
}

// ResolveSectionReorder removes moved from dayOrder and reinserts it
// immediately before target. When target is absent (or is the unscheduled
// container) moved goes to the end. Unscheduled is pinned and can never move.
// dayOrder is not modified.
func ResolveSectionReorder(dayOrder []int, moved, target model.ContainerID) ([]int, error) {
	if moved == model.Unscheduled {
		return nil, &InvalidContainerError{Raw: string(moved), Reason: "unscheduled is pinned first and cannot be reordered"}
	}
	md, ok := moved.Day()
	if !ok {
		return nil, &InvalidContainerError{Raw: string(moved), Reason: "expected \"day-<n>\""}
	}
	td := 0
	if target != model.Unscheduled {
		n, ok := target.Day()
		if !ok {
			return nil, &InvalidContainerError{Raw: string(target), Reason: "expected \"day-<n>\" or \"unscheduled\""}
		}
		td = n
	}

	filtered := make([]int, 0, len(dayOrder))
	for _, d := range dayOrder {
		if d != md {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) == len(dayOrder) {
		return nil, &NotFoundError{Kind: "day", ID: strconv.Itoa(md)}
	}
	if td == md {
		return append([]int(nil), dayOrder...), nil
	}

	at := len(filtered)
	for i, d := range filtered {
		if d == td {
			at = i
			break
		}
	}
	out := make([]int, 0, len(dayOrder))
	out = append(out, filtered[:at]...)
	out = append(out, md)
	out = append(out, filtered[at:]...)
	return out, nil
}

// SameDayOrder reports whether a and b list the same days in the same order.
func SameDayOrder(a, b []int) bool {
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
