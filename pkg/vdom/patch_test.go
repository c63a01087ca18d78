package vdom

import (
	"errors"
	"testing"

	"github.com/pepsighan/ruukh-ui/pkg/dom"
	"github.com/pepsighan/ruukh-ui/pkg/memdom"
)

func mustMount(t *testing.T, d *memdom.Document, tree *KeyedNode) {
	t.Helper()
	if err := tree.Mount(d, d.Root(), nil); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
}

func mustPatch(t *testing.T, d *memdom.Document, next, old *KeyedNode) {
	t.Helper()
	if err := next.Patch(old, d, d.Root(), nil); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
}

func TestMountTextOrder(t *testing.T) {
	d := memdom.New()
	tree := Unkeyed(List(
		Keyed(KeyOf("1"), TextNode("a")),
		Keyed(KeyOf("2"), TextNode("b")),
	))
	mustMount(t, d, tree)

	if got := d.Render(); got != "ab" {
		t.Errorf("Render() = %q, want %q", got, "ab")
	}
	if got := d.CountOps(memdom.OpCreateText); got != 2 {
		t.Errorf("CreateText ops = %d, want 2", got)
	}
}

func TestMountElementSetsAttrsBeforeInsert(t *testing.T) {
	d := memdom.New()
	tree := Unkeyed(Element("div", []Attr{{Name: "id", Value: "x"}}, Unkeyed(TextNode("hi"))))
	mustMount(t, d, tree)

	if got := d.Render(); got != `<div id="x">hi</div>` {
		t.Errorf("Render() = %q", got)
	}
	// The element's own insert must be the last op: create, attr, child,
	// then insertion into the live parent.
	ops := d.Ops()
	if ops[len(ops)-1].Kind != memdom.OpInsert {
		t.Errorf("last op = %v, want Insert", ops[len(ops)-1].Kind)
	}
	if tree.Ref() == nil {
		t.Error("Ref() should be set after mount")
	}
}

func TestMountDeepListOrder(t *testing.T) {
	d := memdom.New()
	tree := Unkeyed(Element("ul", nil, Unkeyed(List(
		Keyed(KeyOf(1), Element("li", nil, Unkeyed(TextNode("one")))),
		Keyed(KeyOf(2), Element("li", nil, Unkeyed(TextNode("two")))),
		Keyed(KeyOf(3), Element("li", nil, Unkeyed(TextNode("three")))),
	))))
	mustMount(t, d, tree)

	want := "<ul><li>one</li><li>two</li><li>three</li></ul>"
	if got := d.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestIdempotentRepatch(t *testing.T) {
	build := func() *KeyedNode {
		return Unkeyed(Element("div", []Attr{{Name: "class", Value: "box"}}, Unkeyed(List(
			Keyed(KeyOf("a"), TextNode("A")),
			Keyed(KeyOf("b"), Element("span", []Attr{{Name: "id", Value: "b"}}, Unkeyed(TextNode("B")))),
			Unkeyed(TextNode("tail")),
		))))
	}

	d := memdom.New()
	old := build()
	mustMount(t, d, old)
	d.ResetOps()

	next := build()
	mustPatch(t, d, next, old)

	if got := d.CountOps(); got != 0 {
		t.Errorf("repatch of identical tree logged %d ops, want 0", got)
		for _, op := range d.Ops() {
			t.Logf("  %s", op)
		}
	}
}

func TestTextPatchInPlace(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(TextNode("before"))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(TextNode("after"))
	mustPatch(t, d, next, old)

	if got := d.Render(); got != "after" {
		t.Errorf("Render() = %q, want %q", got, "after")
	}
	if got := d.CountOps(memdom.OpSetText); got != 1 {
		t.Errorf("SetText ops = %d, want 1", got)
	}
	if got := d.CountOps(memdom.OpCreateText, memdom.OpCreateElement, memdom.OpRemove); got != 0 {
		t.Errorf("create/remove ops = %d, want 0", got)
	}
}

func TestAttributeDiff(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(Element("div", []Attr{
		{Name: "class", Value: "old"},
		{Name: "id", Value: "keep"},
		{Name: "title", Value: "gone"},
	}, nil))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(Element("div", []Attr{
		{Name: "class", Value: "new"},
		{Name: "id", Value: "keep"},
		{Name: "role", Value: "added"},
	}, nil))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpSetAttr); got != 2 {
		t.Errorf("SetAttr ops = %d, want 2 (changed class, added role)", got)
	}
	if got := d.CountOps(memdom.OpRemoveAttr); got != 1 {
		t.Errorf("RemoveAttr ops = %d, want 1 (title)", got)
	}
	if got := d.Render(); got != `<div class="new" id="keep" role="added"></div>` {
		t.Errorf("Render() = %q", got)
	}
}

func TestKindMismatchReplaces(t *testing.T) {
	d := memdom.New()
	old := Keyed(KeyOf("slot"), Element("div", nil, Unkeyed(TextNode("x"))))
	mustMount(t, d, old)
	d.ResetOps()

	next := Keyed(KeyOf("slot"), TextNode("plain"))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpRemove); got == 0 {
		t.Error("expected the old element subtree to be removed")
	}
	if got := d.CountOps(memdom.OpCreateText); got != 1 {
		t.Errorf("CreateText ops = %d, want 1", got)
	}
	if got := d.CountOps(memdom.OpSetText, memdom.OpSetAttr); got != 0 {
		t.Errorf("in-place mutation ops = %d, want 0 for a kind mismatch", got)
	}
	if got := d.Render(); got != "plain" {
		t.Errorf("Render() = %q, want %q", got, "plain")
	}
}

func TestTagChangeReplaces(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(Element("div", nil, Unkeyed(TextNode("x"))))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(Element("span", nil, Unkeyed(TextNode("x"))))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpCreateElement); got != 1 {
		t.Errorf("CreateElement ops = %d, want 1", got)
	}
	if got := d.Render(); got != "<span>x</span>" {
		t.Errorf("Render() = %q", got)
	}
}

func TestKeyMismatchReplaces(t *testing.T) {
	d := memdom.New()
	old := Keyed(KeyOf(1), TextNode("one"))
	mustMount(t, d, old)
	d.ResetOps()

	next := Keyed(KeyOf(2), TextNode("one"))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpRemove); got != 1 {
		t.Errorf("Remove ops = %d, want 1", got)
	}
	if got := d.CountOps(memdom.OpCreateText); got != 1 {
		t.Errorf("CreateText ops = %d, want 1", got)
	}
}

func TestKeyedReorderMovesOnly(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("b"), TextNode("B")),
		Keyed(KeyOf("c"), TextNode("C")),
	))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(List(
		Keyed(KeyOf("c"), TextNode("C")),
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("b"), TextNode("B")),
	))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpCreateText, memdom.OpCreateElement); got != 0 {
		t.Errorf("create ops = %d, want 0 for a pure reorder", got)
	}
	if got := d.CountOps(memdom.OpRemove); got != 0 {
		t.Errorf("remove ops = %d, want 0 for a pure reorder", got)
	}
	if got := d.CountOps(memdom.OpMove); got == 0 {
		t.Error("expected at least one move op")
	}
	if got := d.Render(); got != "CAB" {
		t.Errorf("Render() = %q, want %q", got, "CAB")
	}
}

// pair is a component whose subtree has two roots, for move tests.
type pair struct {
	NopLifecycle
	left, right string
}

func (p *pair) Render() *KeyedNode {
	return Unkeyed(List(
		Unkeyed(TextNode(p.left)),
		Unkeyed(TextNode(p.right)),
	))
}

func (p *pair) Update(next Component) any { return nil }
func (p *pair) RefreshState()             {}
func (p *pair) TakeStateDirty() bool      { return false }
func (p *pair) TakePropsDirty() bool      { return false }

func TestKeyedMoveRelocatesNestedList(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Keyed(KeyOf("x"), List(
			Unkeyed(TextNode("1")),
			Unkeyed(TextNode("2")),
		)),
		Keyed(KeyOf("y"), TextNode("Y")),
	))
	mustMount(t, d, old)
	if got := d.Render(); got != "12Y" {
		t.Fatalf("Render() = %q, want %q", got, "12Y")
	}
	d.ResetOps()

	next := Unkeyed(List(
		Keyed(KeyOf("y"), TextNode("Y")),
		Keyed(KeyOf("x"), List(
			Unkeyed(TextNode("1")),
			Unkeyed(TextNode("2")),
		)),
	))
	mustPatch(t, d, next, old)

	if got := d.Render(); got != "Y12" {
		t.Errorf("Render() = %q, want %q", got, "Y12")
	}
	if got := d.CountOps(memdom.OpCreateText, memdom.OpRemove); got != 0 {
		t.Errorf("create/remove ops = %d, want 0 for a pure reorder", got)
	}
}

func TestKeyedMoveRelocatesComponentSubtree(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Keyed(KeyOf("x"), ComponentNode(&pair{left: "1", right: "2"})),
		Keyed(KeyOf("y"), TextNode("Y")),
	))
	mustMount(t, d, old)
	if got := d.Render(); got != "12Y" {
		t.Fatalf("Render() = %q, want %q", got, "12Y")
	}
	d.ResetOps()

	next := Unkeyed(List(
		Keyed(KeyOf("y"), TextNode("Y")),
		Keyed(KeyOf("x"), ComponentNode(&pair{left: "1", right: "2"})),
	))
	mustPatch(t, d, next, old)

	if got := d.Render(); got != "Y12" {
		t.Errorf("Render() = %q, want %q", got, "Y12")
	}
	if got := d.CountOps(memdom.OpCreateText, memdom.OpRemove); got != 0 {
		t.Errorf("create/remove ops = %d, want 0 for a pure reorder", got)
	}
}

func TestKeyedInsertionInMiddle(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("c"), TextNode("C")),
	))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(List(
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("b"), TextNode("B")),
		Keyed(KeyOf("c"), TextNode("C")),
	))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpCreateText); got != 1 {
		t.Errorf("CreateText ops = %d, want 1", got)
	}
	if got := d.Render(); got != "ABC" {
		t.Errorf("Render() = %q, want %q", got, "ABC")
	}
}

func TestKeyedRemoval(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("b"), TextNode("B")),
		Keyed(KeyOf("c"), TextNode("C")),
	))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(List(
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("c"), TextNode("C")),
	))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpRemove); got != 1 {
		t.Errorf("Remove ops = %d, want 1", got)
	}
	if got := d.Render(); got != "AC" {
		t.Errorf("Render() = %q, want %q", got, "AC")
	}
}

func TestUnkeyedPositionalPatch(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Unkeyed(TextNode("one")),
		Unkeyed(TextNode("two")),
	))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(List(
		Unkeyed(TextNode("one")),
		Unkeyed(TextNode("2")),
		Unkeyed(TextNode("three")),
	))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpSetText); got != 1 {
		t.Errorf("SetText ops = %d, want 1 (two -> 2)", got)
	}
	if got := d.CountOps(memdom.OpCreateText); got != 1 {
		t.Errorf("CreateText ops = %d, want 1 (three)", got)
	}
	if got := d.Render(); got != "one2three" {
		t.Errorf("Render() = %q", got)
	}
}

func TestListShrinkRemovesTail(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Unkeyed(TextNode("one")),
		Unkeyed(TextNode("two")),
		Unkeyed(TextNode("three")),
	))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(List(Unkeyed(TextNode("one"))))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpRemove); got != 2 {
		t.Errorf("Remove ops = %d, want 2", got)
	}
	if got := d.Render(); got != "one" {
		t.Errorf("Render() = %q", got)
	}
}

func TestEndToEndReorderAndMutate(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Keyed(KeyOf("1"), TextNode("a")),
		Keyed(KeyOf("2"), TextNode("b")),
	))
	mustMount(t, d, old)
	if got := d.Render(); got != "ab" {
		t.Fatalf("after mount Render() = %q, want %q", got, "ab")
	}
	d.ResetOps()

	next := Unkeyed(List(
		Keyed(KeyOf("2"), TextNode("b")),
		Keyed(KeyOf("1"), TextNode("a changed")),
	))
	mustPatch(t, d, next, old)

	if got := d.CountOps(memdom.OpCreateText, memdom.OpCreateElement); got != 0 {
		t.Errorf("create ops = %d, want 0", got)
	}
	if got := d.CountOps(memdom.OpRemove); got != 0 {
		t.Errorf("remove ops = %d, want 0", got)
	}
	if got := d.CountOps(memdom.OpSetText); got != 1 {
		t.Errorf("SetText ops = %d, want 1", got)
	}
	if got := d.Render(); got != "ba changed" {
		t.Errorf("Render() = %q, want %q", got, "ba changed")
	}
}

func TestElementChildRemoved(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(Element("div", nil, Unkeyed(TextNode("inner"))))
	mustMount(t, d, old)
	d.ResetOps()

	next := Unkeyed(Element("div", nil, nil))
	mustPatch(t, d, next, old)

	if got := d.Render(); got != "<div></div>" {
		t.Errorf("Render() = %q", got)
	}
	if got := d.CountOps(memdom.OpRemove); got != 1 {
		t.Errorf("Remove ops = %d, want 1", got)
	}
}

func TestRemoveTearsDownSubtree(t *testing.T) {
	d := memdom.New()
	tree := Unkeyed(Element("div", nil, Unkeyed(List(
		Keyed(KeyOf(1), TextNode("x")),
		Keyed(KeyOf(2), Element("span", nil, Unkeyed(TextNode("y")))),
	))))
	mustMount(t, d, tree)
	d.ResetOps()

	if err := tree.Remove(d.Root()); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got := d.Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
	if tree.Ref() != nil {
		t.Error("Ref() should be nil after removal")
	}
}

func TestRenderTargetFailurePropagates(t *testing.T) {
	d := memdom.New()
	boom := dom.Failf(dom.ErrDetached, "memdom: test failure")
	d.FailOn = func(op memdom.Op) error {
		if op.Kind == memdom.OpInsert {
			return boom
		}
		return nil
	}

	tree := Unkeyed(Element("div", nil, nil))
	err := tree.Mount(d, d.Root(), nil)
	if err == nil {
		t.Fatal("Mount should propagate the render-target failure")
	}
	if !errors.Is(err, dom.ErrDetached) {
		t.Errorf("error = %v, want wrapped dom.ErrDetached", err)
	}
}

func TestFailureKeepsEarlierSiblings(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("b"), TextNode("B")),
	))
	mustMount(t, d, old)
	d.ResetOps()

	// Fail only text creation: the keyed patch of existing children should
	// land, then the new child's mount aborts the pass.
	d.FailOn = func(op memdom.Op) error {
		if op.Kind == memdom.OpCreateText {
			return dom.Failf(dom.ErrNotFound, "memdom: creation refused")
		}
		return nil
	}

	next := Unkeyed(List(
		Keyed(KeyOf("c"), TextNode("C")),
		Keyed(KeyOf("a"), TextNode("A2")),
		Keyed(KeyOf("b"), TextNode("B")),
	))
	err := next.Patch(old, d, d.Root(), nil)
	if err == nil {
		t.Fatal("Patch should propagate the render-target failure")
	}
	// Siblings processed before the failing mount keep their updates.
	if got := d.CountOps(memdom.OpSetText); got != 1 {
		t.Errorf("SetText ops before failure = %d, want 1", got)
	}
}

func TestRemoveAfterFailedPatch(t *testing.T) {
	d := memdom.New()
	old := Unkeyed(List(
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("b"), TextNode("B")),
	))
	mustMount(t, d, old)

	d.FailOn = func(op memdom.Op) error {
		if op.Kind == memdom.OpCreateText {
			return dom.Failf(dom.ErrNotFound, "memdom: creation refused")
		}
		return nil
	}
	next := Unkeyed(List(
		Keyed(KeyOf("c"), TextNode("C")),
		Keyed(KeyOf("a"), TextNode("A")),
		Keyed(KeyOf("b"), TextNode("B")),
	))
	if err := next.Patch(old, d, d.Root(), nil); err == nil {
		t.Fatal("Patch should propagate the render-target failure")
	}
	d.FailOn = nil

	// The consumed tree's nodes now belong to next; removing it tears down
	// everything attached and skips the child that never mounted.
	if err := next.Remove(d.Root()); err != nil {
		t.Fatalf("Remove after failed patch: %v", err)
	}
	if got := d.Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}
