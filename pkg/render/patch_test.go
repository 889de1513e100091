package render

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/metrics"
	"github.com/vango-dev/minifw/pkg/vdom"
)

func todoItem(title string, done bool, onToggle vdom.Handler) *vdom.VNode {
	return vdom.Li(vdom.ClassIf(done, "completed"),
		vdom.Div(vdom.Class("view"),
			vdom.Input(vdom.Class("toggle"), vdom.Type("checkbox"), vdom.Checked(done), vdom.OnChange(onToggle)),
			vdom.Label(title),
			vdom.Button(vdom.Class("destroy")),
		),
	)
}

func noop(*vdom.Event) {}

func TestPatchIdempotent(t *testing.T) {
	r, doc := newTestRenderer(t)

	tree := []*vdom.VNode{
		vdom.Ul(vdom.Class("todo-list"),
			todoItem("milk", false, noop),
			todoItem("eggs", true, noop),
		),
		vdom.Footer(vdom.Span(vdom.Strong("1"), " item left")),
		vdom.Text("tail"),
	}
	container := mountAll(r, doc, tree)
	before := doc.MutationCount()

	r.Patch(container, tree, tree)
	if got := doc.MutationCount() - before; got != 0 {
		t.Errorf("patch(T, T) made %d host mutations: %v", got, doc.Mutations()[before:])
	}
}

func TestPatchIdempotentWithFreshHandlers(t *testing.T) {
	r, doc := newTestRenderer(t)

	// Each render allocates new closures; the tree is otherwise identical.
	view := func() []*vdom.VNode {
		return []*vdom.VNode{todoItem("milk", false, func(*vdom.Event) {})}
	}
	prev := view()
	container := mountAll(r, doc, prev)
	before := doc.MutationCount()

	r.Patch(container, prev, view())
	if got := doc.MutationCount() - before; got != 0 {
		t.Errorf("re-render made %d host mutations", got)
	}
}

func TestPatchMatchesFreshMount(t *testing.T) {
	base := []*vdom.VNode{
		vdom.Ul(vdom.Class("todo-list"),
			todoItem("milk", false, noop),
			todoItem("eggs", false, noop),
			todoItem("bread", true, noop),
		),
		vdom.Text("footer"),
	}

	tests := []struct {
		name string
		next []*vdom.VNode
	}{
		{
			name: "attribute changed",
			next: []*vdom.VNode{
				vdom.Ul(vdom.Class("todo-list", "filtered"),
					todoItem("milk", true, noop),
					todoItem("eggs", false, noop),
					todoItem("bread", true, noop),
				),
				vdom.Text("footer"),
			},
		},
		{
			name: "last child removed",
			next: []*vdom.VNode{
				vdom.Ul(vdom.Class("todo-list"),
					todoItem("milk", false, noop),
					todoItem("eggs", false, noop),
				),
				vdom.Text("footer"),
			},
		},
		{
			name: "child appended",
			next: []*vdom.VNode{
				vdom.Ul(vdom.Class("todo-list"),
					todoItem("milk", false, noop),
					todoItem("eggs", false, noop),
					todoItem("bread", true, noop),
					todoItem("jam", false, noop),
				),
				vdom.Text("footer"),
				vdom.Hr(),
			},
		},
		{
			name: "child tag changed",
			next: []*vdom.VNode{
				vdom.Ul(vdom.Class("todo-list"),
					todoItem("milk", false, noop),
					vdom.P("eggs"),
					todoItem("bread", true, noop),
				),
				vdom.Span("footer"),
			},
		},
		{
			name: "text changed",
			next: []*vdom.VNode{
				vdom.Ul(vdom.Class("todo-list"),
					todoItem("milk!", false, noop),
					todoItem("eggs", false, noop),
					todoItem("bread", true, noop),
				),
				vdom.Text("footer!"),
			},
		},
		{
			name: "reordered",
			next: []*vdom.VNode{
				vdom.Ul(vdom.Class("todo-list"),
					todoItem("bread", true, noop),
					todoItem("milk", false, noop),
					todoItem("eggs", false, noop),
				),
				vdom.Text("footer"),
			},
		},
		{
			name: "everything removed",
			next: nil,
		},
		{
			name: "attribute removed and handler dropped",
			next: []*vdom.VNode{
				vdom.Ul(
					vdom.Li(vdom.Input(vdom.Type("checkbox"))),
				),
				vdom.Text("footer"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, doc := newTestRenderer(t)
			patched := mountAll(r, doc, base)
			r.Patch(patched, base, tt.next)

			fr, fdoc := newTestRenderer(t)
			fresh := mountAll(fr, fdoc, tt.next)

			assertSameTree(t, patched.(*host.Element), fresh.(*host.Element))
			if got, want := len(r.Mounted(patched)), len(tt.next); got != want {
				t.Errorf("Mounted() len = %d, want %d", got, want)
			}
		})
	}
}

func TestPatchSharedHostAttributeMatchesFreshMount(t *testing.T) {
	tests := []struct {
		name       string
		prev, next *vdom.VNode
		want       string
	}{
		{
			name: "className dropped",
			prev: vdom.Div(vdom.Class("a"), vdom.ClassName("b")),
			next: vdom.Div(vdom.Class("a")),
			want: "a",
		},
		{
			name: "class dropped",
			prev: vdom.Div(vdom.Class("a"), vdom.ClassName("b")),
			next: vdom.Div(vdom.ClassName("b")),
			want: "b",
		},
		{
			name: "className added",
			prev: vdom.Div(vdom.Class("a")),
			next: vdom.Div(vdom.Class("a"), vdom.ClassName("b")),
			want: "b",
		},
		{
			name: "className nulled",
			prev: vdom.Div(vdom.Class("a"), vdom.ClassName("b")),
			next: vdom.Div(vdom.Class("a"), vdom.Attr{Key: "className", Value: vdom.Null()}),
			want: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, doc := newTestRenderer(t)
			patched := mountAll(r, doc, []*vdom.VNode{tt.prev})
			r.Patch(patched, []*vdom.VNode{tt.prev}, []*vdom.VNode{tt.next})

			fr, fdoc := newTestRenderer(t)
			fresh := mountAll(fr, fdoc, []*vdom.VNode{tt.next})

			assertSameTree(t, patched.(*host.Element), fresh.(*host.Element))
			got, ok := r.Mounted(patched)[0].(*host.Element).Attr("class")
			if !ok || got != tt.want {
				t.Errorf("class = %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestPatchBooleanAttribute(t *testing.T) {
	r, doc := newTestRenderer(t)

	view := func(checked bool) []*vdom.VNode {
		return []*vdom.VNode{vdom.Input(vdom.Type("checkbox"), vdom.Checked(checked))}
	}
	checked := func(container host.Node) (string, bool) {
		return r.Mounted(container)[0].(*host.Element).Attr("checked")
	}

	container := mountAll(r, doc, view(false))
	if _, ok := checked(container); ok {
		t.Fatal("checked present after mounting false")
	}

	r.Patch(container, view(false), view(true))
	if v, ok := checked(container); !ok || v != "" {
		t.Fatalf("checked = %q, %v after true; want empty presence attribute", v, ok)
	}

	r.Patch(container, view(true), view(false))
	if _, ok := checked(container); ok {
		t.Fatal("checked still present after false")
	}
}

func TestPatchClassNameMapsToClass(t *testing.T) {
	r, doc := newTestRenderer(t)

	prev := []*vdom.VNode{vdom.Div(vdom.ClassName("a"))}
	next := []*vdom.VNode{vdom.Div(vdom.ClassName("b"))}
	container := mountAll(r, doc, prev)
	r.Patch(container, prev, next)

	el := r.Mounted(container)[0].(*host.Element)
	if v, _ := el.Attr("class"); v != "b" {
		t.Errorf("class = %q, want b", v)
	}
	if _, ok := el.Attr("className"); ok {
		t.Error("className leaked into the host")
	}
}

func TestPatchNullRemovesAttribute(t *testing.T) {
	r, doc := newTestRenderer(t)

	prev := []*vdom.VNode{vdom.A(vdom.Href("#/active"), "Active")}
	next := []*vdom.VNode{vdom.A(vdom.Prop("href", nil), "Active")}
	container := mountAll(r, doc, prev)
	r.Patch(container, prev, next)

	if _, ok := r.Mounted(container)[0].(*host.Element).Attr("href"); ok {
		t.Error("href should be removed by a null value")
	}
}

func TestPatchReplacesHandler(t *testing.T) {
	r, doc := newTestRenderer(t)

	var calls []string
	view := func(label string) []*vdom.VNode {
		return []*vdom.VNode{vdom.Button(vdom.OnClick(func(*vdom.Event) { calls = append(calls, label) }), "go")}
	}

	prev := view("first")
	container := mountAll(r, doc, prev)
	id := r.Mounted(container)[0].(*host.Element).ID()

	next := view("second")
	r.Patch(container, prev, next)
	doc.Dispatch(id, &vdom.Event{Type: "click"})

	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v, want [second]", calls)
	}

	r.Patch(container, next, []*vdom.VNode{vdom.Button("go")})
	if doc.Dispatch(id, &vdom.Event{Type: "click"}) {
		t.Error("handler still bound after removal")
	}
}

func TestPatchMalformedChild(t *testing.T) {
	r, doc := newTestRenderer(t)

	prev := []*vdom.VNode{vdom.Ul(vdom.Li("a"), vdom.Li("b"))}
	next := []*vdom.VNode{vdom.Ul(vdom.Li("a"), &vdom.VNode{Kind: vdom.KindElement}, vdom.Li("c"))}
	container := mountAll(r, doc, prev)
	r.Patch(container, prev, next)

	if got := doc.InnerHTML(container); got != "<ul><li>a</li><li>c</li></ul>" {
		t.Errorf("InnerHTML = %s", got)
	}

	// The malformed slot keeps rendering as empty text on the next pass.
	again := []*vdom.VNode{vdom.Ul(vdom.Li("a"), vdom.Li("b"), vdom.Li("c"))}
	r.Patch(container, next, again)
	if got := doc.InnerHTML(container); got != "<ul><li>a</li><li>b</li><li>c</li></ul>" {
		t.Errorf("InnerHTML = %s", got)
	}
}

func TestPatchOutOfSyncPrev(t *testing.T) {
	r, doc := newTestRenderer(t)

	mounted := []*vdom.VNode{vdom.P("one"), vdom.P("two")}
	container := mountAll(r, doc, mounted)

	// Caller lost track of what was mounted and passes a shorter list.
	next := []*vdom.VNode{vdom.P("uno")}
	r.Patch(container, mounted[:1], next)

	if got := doc.InnerHTML(container); got != "<p>uno</p>" {
		t.Errorf("InnerHTML = %s", got)
	}
}

func TestPatchCountsMetrics(t *testing.T) {
	doc := host.NewDocument()
	m := metrics.New(metrics.WithNamespace("test"))
	r := New(doc, WithLogger(quietLogger()), WithMetrics(m))

	prev := []*vdom.VNode{vdom.P(vdom.Class("a"), "x")}
	next := []*vdom.VNode{vdom.P(vdom.Class("b"), "x"), {Kind: vdom.KindElement}}
	container := mountAll(r, doc, prev)
	r.Patch(container, prev, next)

	if r.Tree() != host.Tree(doc) {
		t.Error("Tree() should unwrap the counting decorator")
	}

	want := `
# HELP test_patches_total Total number of patch passes
# TYPE test_patches_total counter
test_patches_total 1
# HELP test_malformed_nodes_total Malformed nodes and attributes skipped
# TYPE test_malformed_nodes_total counter
test_malformed_nodes_total{code="E100"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(want),
		"test_patches_total", "test_malformed_nodes_total"); err != nil {
		t.Error(err)
	}
}
