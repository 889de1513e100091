package host

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/minifw/pkg/vdom"
)

func TestDocumentBuildAndLog(t *testing.T) {
	d := NewDocument()
	ul := d.CreateElement("ul")
	li := d.CreateElement("li")
	txt := d.CreateText("milk")
	d.AppendChild(li, txt)
	d.AppendChild(ul, li)
	d.AppendChild(d.Body(), ul)
	d.SetAttribute(ul, "class", "todo-list")

	got := d.Drain()
	want := []Mutation{
		{Op: OpCreateElement, Target: "n1", Tag: "ul"},
		{Op: OpCreateElement, Target: "n2", Tag: "li"},
		{Op: OpCreateText, Target: "n3", Value: "milk"},
		{Op: OpAppend, Target: "n3", Parent: "n2"},
		{Op: OpAppend, Target: "n2", Parent: "n1"},
		{Op: OpAppend, Target: "n1", Parent: "n0"},
		{Op: OpSetAttr, Target: "n1", Key: "class", Value: "todo-list"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mutation log mismatch (-want +got):\n%s", diff)
	}
	if len(d.Mutations()) != 0 {
		t.Error("Drain should clear the log")
	}
	if d.MutationCount() != len(want) {
		t.Errorf("MutationCount = %d, want %d", d.MutationCount(), len(want))
	}

	if got := d.InnerHTML(d.Body()); got != `<ul class="todo-list"><li>milk</li></ul>` {
		t.Errorf("InnerHTML = %s", got)
	}
}

func TestInsertBeforeAndRemove(t *testing.T) {
	d := NewDocument()
	a := d.CreateText("a")
	c := d.CreateText("c")
	d.AppendChild(d.Body(), a)
	d.AppendChild(d.Body(), c)

	b := d.CreateText("b")
	d.InsertBefore(d.Body(), b, c)
	if got := d.InnerHTML(d.Body()); got != "abc" {
		t.Fatalf("after insert = %q, want abc", got)
	}

	d.RemoveChild(d.Body(), a)
	if got := d.InnerHTML(d.Body()); got != "bc" {
		t.Fatalf("after remove = %q, want bc", got)
	}
	if d.Find(a.(*Element).ID()) != nil {
		t.Error("removed node should not be findable")
	}

	// nil ref appends
	d.InsertBefore(d.Body(), a, nil)
	if got := d.InnerHTML(d.Body()); got != "bca" {
		t.Errorf("after re-append = %q, want bca", got)
	}
}

func TestInsertMovesAttachedNode(t *testing.T) {
	d := NewDocument()
	x := d.CreateElement("i")
	y := d.CreateElement("b")
	d.AppendChild(d.Body(), x)
	d.AppendChild(d.Body(), y)
	d.InsertBefore(d.Body(), y, x)
	if got := d.InnerHTML(d.Body()); got != "<b></b><i></i>" {
		t.Errorf("InnerHTML = %s", got)
	}
	if n := len(d.Body().Children()); n != 2 {
		t.Errorf("children = %d, want 2", n)
	}
}

func TestAttributeNoOps(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("input")
	d.Drain()
	before := d.MutationCount()

	d.RemoveAttribute(el, "checked")
	d.RemoveHandler(el, "click")
	d.SetText(el, "not a text node")
	d.SetAttribute(d.CreateText("t"), "class", "x")

	// only the CreateText is recorded
	if got := d.MutationCount() - before; got != 1 {
		t.Errorf("recorded %d mutations, want 1", got)
	}
}

func TestDispatch(t *testing.T) {
	d := NewDocument()
	btn := d.CreateElement("button")
	d.AppendChild(d.Body(), btn)

	var got *vdom.Event
	d.SetHandler(btn, "click", func(e *vdom.Event) { got = e })

	id := btn.(*Element).ID()
	if !d.Dispatch(id, &vdom.Event{Type: "click"}) {
		t.Fatal("Dispatch returned false")
	}
	if got == nil || got.Target != btn {
		t.Errorf("handler did not receive target, got %+v", got)
	}
	if d.Dispatch(id, &vdom.Event{Type: "keydown"}) {
		t.Error("Dispatch with no handler should return false")
	}

	d.RemoveHandler(btn, "click")
	if d.Dispatch(id, &vdom.Event{Type: "click"}) {
		t.Error("removed handler still dispatched")
	}
	if d.Dispatch("n999", &vdom.Event{Type: "click"}) {
		t.Error("unknown id dispatched")
	}
}

func TestDispatchHandlerMayMutate(t *testing.T) {
	d := NewDocument()
	btn := d.CreateElement("button")
	d.AppendChild(d.Body(), btn)
	d.SetHandler(btn, "click", func(e *vdom.Event) {
		d.SetAttribute(btn, "data-clicked", "yes")
	})
	d.Dispatch(btn.(*Element).ID(), &vdom.Event{Type: "click"})
	if v, _ := btn.(*Element).Attr("data-clicked"); v != "yes" {
		t.Errorf("data-clicked = %q", v)
	}
}

func TestQueryClass(t *testing.T) {
	d := NewDocument()
	for _, cls := range []string{"todo completed", "todo", "other"} {
		li := d.CreateElement("li")
		d.SetAttribute(li, "class", cls)
		d.AppendChild(d.Body(), li)
	}
	if got := len(d.QueryClass("todo")); got != 2 {
		t.Errorf("QueryClass(todo) = %d, want 2", got)
	}
	if got := len(d.QueryClass("completed")); got != 1 {
		t.Errorf("QueryClass(completed) = %d, want 1", got)
	}
}

func TestFocusAfter(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")
	d.AppendChild(d.Body(), input)

	timer := FocusAfter(d, input, 0)
	if timer == nil {
		t.Fatal("Document should support focus")
	}

	deadline := time.Now().Add(time.Second)
	for d.Focused() == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if d.Focused() != input {
		t.Error("input was not focused")
	}
}

func TestFocusDetachedIgnored(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")
	d.Focus(input)
	if d.Focused() != nil {
		t.Error("detached node should not take focus")
	}
}

type plainTree struct{ Tree }

func TestFocusAfterUnsupported(t *testing.T) {
	if FocusAfter(plainTree{}, nil, 0) != nil {
		t.Error("expected nil timer for a tree without focus")
	}
}
