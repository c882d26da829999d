package order

import (
	"errors"
	"testing"

	"itinerary-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func abcDay1() []model.Item {
	return []model.Item{
		it("A", day(1), 0),
		it("B", day(1), 1),
		it("C", day(1), 2),
	}
}

func TestParseTarget_PrefersItemsThenContainers(t *testing.T) {
	items := []model.Item{it("day-1", model.Unscheduled, 0), it("x", model.Unscheduled, 1)}

	tg, ok, err := ParseTarget(items, "day-1", 2)
	if err != nil || !ok || tg.ItemID != "day-1" {
		t.Fatalf("expected item target; got %+v ok=%v err=%v", tg, ok, err)
	}
	tg, ok, err = ParseTarget(items, "day-2", 2)
	if err != nil || !ok || tg.Container != day(2) {
		t.Fatalf("expected container target; got %+v ok=%v err=%v", tg, ok, err)
	}
	if _, ok, err = ParseTarget(items, "", 2); ok || err != nil {
		t.Fatalf("expected no target for empty id")
	}
	if _, ok, err = ParseTarget(items, "toolbar", 2); ok || err != nil {
		t.Fatalf("expected unrecognized target to be ignored")
	}
	if _, _, err = ParseTarget(items, "day-7", 2); err == nil {
		t.Fatalf("expected invalid container error for day-7")
	}
}

func TestResolvePreview_ReturnsContainerOnly(t *testing.T) {
	items := append(abcDay1(), it("U", model.Unscheduled, 0))
	c, err := ResolvePreview(items, "U", ItemTarget("B"), 2)
	if err != nil || c != day(1) {
		t.Fatalf("got %q err=%v", c, err)
	}
	c, err = ResolvePreview(items, "U", ContainerTarget(day(2)), 2)
	if err != nil || c != day(2) {
		t.Fatalf("got %q err=%v", c, err)
	}
	if _, err := ResolvePreview(items, "nope", ContainerTarget(day(2)), 2); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestResolveMove_SameContainerForward_InsertsAfterHovered(t *testing.T) {
	items := abcDay1()
	res, err := ResolveMove(items, "A", ItemTarget("C"), 1)
	if err != nil {
		t.Fatalf("ResolveMove: %v", err)
	}
	if res.NoOp || res.Container != day(1) || res.Position != 2 {
		t.Fatalf("unexpected resolution %+v", res)
	}
	out, err := ApplyMove(items, "A", res, 1)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if got, want := idsOf(t, out, day(1)), []string{"B", "C", "A"}; !sameStrings(got, want) {
		t.Fatalf("order = %v; want %v", got, want)
	}
	if got := positionsOf(out, day(1)); !cmp.Equal(got, []int{0, 1, 2}) {
		t.Fatalf("positions = %v", got)
	}
}

func TestResolveMove_SameContainerBackward_InsertsBeforeHovered(t *testing.T) {
	items := abcDay1()
	res, err := ResolveMove(items, "C", ItemTarget("B"), 1)
	if err != nil {
		t.Fatalf("ResolveMove: %v", err)
	}
	out, err := ApplyMove(items, "C", res, 1)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if got, want := idsOf(t, out, day(1)), []string{"A", "C", "B"}; !sameStrings(got, want) {
		t.Fatalf("order = %v; want %v", got, want)
	}
}

func TestResolveMove_AdjacentSwapDoesNotJitter(t *testing.T) {
	items := abcDay1()
	res, _ := ResolveMove(items, "A", ItemTarget("B"), 1)
	out, _ := ApplyMove(items, "A", res, 1)
	if got, want := idsOf(t, out, day(1)), []string{"B", "A", "C"}; !sameStrings(got, want) {
		t.Fatalf("first hop = %v; want %v", got, want)
	}
	// Hovering the same neighbour again from the new slot moves back; it must
	// not keep toggling when the pointer stays over the same item.
	res2, _ := ResolveMove(out, "A", ItemTarget("A"), 1)
	if !res2.NoOp {
		t.Fatalf("hovering self should be a no-op")
	}
	res3, _ := ResolveMove(out, "A", ItemTarget("B"), 1)
	out3, _ := ApplyMove(out, "A", res3, 1)
	if got, want := idsOf(t, out3, day(1)), []string{"A", "B", "C"}; !sameStrings(got, want) {
		t.Fatalf("hop back = %v; want %v", got, want)
	}
}

func TestResolveMove_CrossContainerOverItem_ByRelativeIndex(t *testing.T) {
	items := []model.Item{
		it("u0", model.Unscheduled, 0),
		it("u1", model.Unscheduled, 1),
		it("d0", day(1), 0),
		it("d1", day(1), 1),
		it("d2", day(1), 2),
	}
	// u0 (index 0) over d1 (index 1): forward, lands after d1.
	res, err := ResolveMove(items, "u0", ItemTarget("d1"), 1)
	if err != nil {
		t.Fatalf("ResolveMove: %v", err)
	}
	out, _ := ApplyMove(items, "u0", res, 1)
	if got, want := idsOf(t, out, day(1)), []string{"d0", "d1", "u0", "d2"}; !sameStrings(got, want) {
		t.Fatalf("forward = %v; want %v", got, want)
	}
	if got, want := idsOf(t, out, model.Unscheduled), []string{"u1"}; !sameStrings(got, want) || out[1].Position != 0 {
		t.Fatalf("source not compacted: %v", got)
	}

	// u1 (index 1) over d0 (index 0): backward, lands before d0.
	res, _ = ResolveMove(items, "u1", ItemTarget("d0"), 1)
	out, _ = ApplyMove(items, "u1", res, 1)
	if got, want := idsOf(t, out, day(1)), []string{"u1", "d0", "d1", "d2"}; !sameStrings(got, want) {
		t.Fatalf("backward = %v; want %v", got, want)
	}
}

func TestResolveMove_OverContainer_AppendsToEnd(t *testing.T) {
	items := []model.Item{
		it("u0", model.Unscheduled, 0),
		it("u1", model.Unscheduled, 1),
		it("u2", model.Unscheduled, 2),
	}
	res, err := ResolveMove(items, "u1", ContainerTarget(day(1)), 1)
	if err != nil {
		t.Fatalf("ResolveMove: %v", err)
	}
	if res.Container != day(1) || res.Position != 0 || res.NoOp {
		t.Fatalf("empty container should yield position 0; got %+v", res)
	}
	out, err := ApplyMove(items, "u1", res, 1)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if got := positionsOf(out, model.Unscheduled); !cmp.Equal(got, []int{0, 1}) {
		t.Fatalf("unscheduled positions = %v", got)
	}
	if got, want := idsOf(t, out, model.Unscheduled), []string{"u0", "u2"}; !sameStrings(got, want) {
		t.Fatalf("unscheduled = %v", got)
	}
	if c, p, _ := Locate(out, "u1"); c != day(1) || p != 0 {
		t.Fatalf("u1 at %s@%d", c, p)
	}
	if err := CheckInvariants(out, 1); err != nil {
		t.Fatalf("invariants: %v", err)
	}

	res, _ = ResolveMove(out, "u0", ContainerTarget(day(1)), 1)
	if res.Position != 1 {
		t.Fatalf("expected max+1 = 1; got %d", res.Position)
	}
}

func TestResolveMove_DropOnOwnSlot_IsNoop(t *testing.T) {
	items := abcDay1()
	cases := []Target{
		ItemTarget("C"),
		ContainerTarget(day(1)),
	}
	for _, tg := range cases {
		res, err := ResolveMove(items, "C", tg, 1)
		if err != nil {
			t.Fatalf("ResolveMove(%v): %v", tg, err)
		}
		if !res.NoOp {
			t.Fatalf("expected no-op for %v; got %+v", tg, res)
		}
		out, _ := ApplyMove(items, "C", res, 1)
		if diff := cmp.Diff(items, out); diff != "" {
			t.Fatalf("no-op changed items (-want +got):\n%s", diff)
		}
	}
	// Last item dropped on its own container is also its own slot; others are not.
	res, _ := ResolveMove(items, "A", ContainerTarget(day(1)), 1)
	if res.NoOp {
		t.Fatalf("moving A to the end of its container is a real move")
	}
}

func TestResolveMove_Errors(t *testing.T) {
	items := abcDay1()
	var nf *NotFoundError
	if _, err := ResolveMove(items, "missing", ItemTarget("A"), 1); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
	if _, err := ResolveMove(items, "A", ItemTarget("missing"), 1); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
	var ice *InvalidContainerError
	if _, err := ResolveMove(items, "A", ContainerTarget("day-2"), 1); !errors.As(err, &ice) {
		t.Fatalf("expected InvalidContainerError; got %v", err)
	}
	if _, err := ResolveMove(items, "A", Target{}, 1); err == nil {
		t.Fatalf("expected error for empty target")
	}
}

func TestApplyMove_RecoversFromSparsePositions(t *testing.T) {
	items := []model.Item{
		it("a", day(1), 0),
		it("b", day(1), 4),
		it("c", day(1), 9),
		it("x", day(2), 3),
	}
	res := Resolution{ItemID: "x", From: day(2), Container: day(1), Position: 1}
	out, err := ApplyMove(items, "x", res, 2)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if err := CheckInvariants(out, 2); err != nil {
		t.Fatalf("expected renormalized result: %v", err)
	}
	if got, want := idsOf(t, out, day(1)), []string{"a", "x", "b", "c"}; !sameStrings(got, want) {
		t.Fatalf("order = %v; want %v", got, want)
	}
}

func TestPlace_ReplaysCommittedIntentAndClamps(t *testing.T) {
	items := []model.Item{
		it("u0", model.Unscheduled, 0),
		it("u1", model.Unscheduled, 1),
		it("d0", day(1), 0),
	}
	out, err := Place(items, "u0", day(1), 0, 1)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if got, want := idsOf(t, out, day(1)), []string{"u0", "d0"}; !sameStrings(got, want) {
		t.Fatalf("day-1 = %v; want %v", got, want)
	}
	out, err = Place(items, "u0", day(1), 99, 1)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if got, want := idsOf(t, out, day(1)), []string{"d0", "u0"}; !sameStrings(got, want) {
		t.Fatalf("clamped day-1 = %v; want %v", got, want)
	}
	out, err = Place(items, "u1", model.Unscheduled, 0, 1)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if got, want := idsOf(t, out, model.Unscheduled), []string{"u1", "u0"}; !sameStrings(got, want) {
		t.Fatalf("unscheduled = %v; want %v", got, want)
	}
	if _, err := Place(items, "u0", "day-4", 0, 1); err == nil {
		t.Fatalf("expected invalid container error")
	}
}

func TestMoves_ConserveItemsAndDensity(t *testing.T) {
	base := []model.Item{
		it("a", model.Unscheduled, 0),
		it("b", model.Unscheduled, 1),
		it("c", day(1), 0),
		it("d", day(1), 1),
		it("e", day(2), 0),
	}
	targets := []string{"a", "b", "c", "d", "e", "unscheduled", "day-1", "day-2"}
	for _, active := range []string{"a", "b", "c", "d", "e"} {
		for _, raw := range targets {
			tg, ok, err := ParseTarget(base, raw, 2)
			if err != nil || !ok {
				t.Fatalf("ParseTarget(%q): ok=%v err=%v", raw, ok, err)
			}
			res, err := ResolveMove(base, active, tg, 2)
			if err != nil {
				t.Fatalf("ResolveMove(%s over %s): %v", active, raw, err)
			}
			out, err := ApplyMove(base, active, res, 2)
			if err != nil {
				t.Fatalf("ApplyMove(%s over %s): %v", active, raw, err)
			}
			if err := CheckInvariants(out, 2); err != nil {
				t.Fatalf("%s over %s: %v", active, raw, err)
			}
			if !sameStrings(sortedIDs(base), sortedIDs(out)) {
				t.Fatalf("%s over %s: item set changed", active, raw)
			}
		}
	}
}
