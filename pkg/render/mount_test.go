package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/vdom"
)

func TestMountElementTree(t *testing.T) {
	r, doc := newTestRenderer(t)

	tree := vdom.Section(vdom.ClassName("todoapp"), vdom.ID("app"),
		vdom.Header(vdom.H1("todos")),
		vdom.Ul(vdom.Class("todo-list"),
			vdom.Li(vdom.Input(vdom.Type("checkbox"), vdom.Checked(true)), vdom.Label("milk")),
		),
	)
	node := r.Mount(tree, doc.Body())

	want := `<section class="todoapp" id="app"><header><h1>todos</h1></header>` +
		`<ul class="todo-list"><li><input checked type="checkbox"><label>milk</label></li></ul></section>`
	if got := doc.HTML(node); got != want {
		t.Errorf("HTML =\n%s\nwant\n%s", got, want)
	}
	if mounted := r.Mounted(doc.Body()); len(mounted) != 1 || mounted[0] != node {
		t.Errorf("Mounted() = %v", mounted)
	}
}

func TestMountText(t *testing.T) {
	r, doc := newTestRenderer(t)
	node := r.Mount(vdom.Text("hello <world>"), doc.Body())
	if !node.(*host.Element).IsText() {
		t.Fatal("expected a text node")
	}
	if got := doc.InnerHTML(doc.Body()); got != "hello &lt;world&gt;" {
		t.Errorf("InnerHTML = %q", got)
	}
}

func TestMountMalformedChildKeepsSiblings(t *testing.T) {
	logger, buf := bufferLogger()
	doc := host.NewDocument()
	r := New(doc, WithLogger(logger))

	tree := vdom.Ul(
		vdom.Li("a"),
		&vdom.VNode{Kind: vdom.KindElement}, // missing tag
		&vdom.VNode{Kind: vdom.KindElement, Tag: "bad tag"},
		vdom.Li("b"),
	)
	node := r.Mount(tree, doc.Body())

	if got := doc.HTML(node); got != "<ul><li>a</li><li>b</li></ul>" {
		t.Errorf("HTML = %s", got)
	}
	if n := len(node.(*host.Element).Children()); n != 4 {
		t.Errorf("children = %d, want 4 (malformed nodes become empty text)", n)
	}
	for _, code := range []string{"E100", "E101"} {
		if !strings.Contains(buf.String(), code) {
			t.Errorf("log missing %s:\n%s", code, buf.String())
		}
	}
}

func TestMountNilNode(t *testing.T) {
	r, doc := newTestRenderer(t)
	node := r.Mount(nil, doc.Body())
	if !node.(*host.Element).IsText() {
		t.Error("nil node should mount as empty text")
	}
}

func TestMountNilParent(t *testing.T) {
	logger, buf := bufferLogger()
	r := New(host.NewDocument(), WithLogger(logger))
	node := r.Mount(vdom.Div(), nil)
	if node == nil {
		t.Fatal("expected detached node")
	}
	if node.(*host.Element).Parent() != nil {
		t.Error("node should be detached")
	}
	if !strings.Contains(buf.String(), "nil parent") {
		t.Errorf("expected nil parent log, got %s", buf.String())
	}
}

func TestMountAttributeRules(t *testing.T) {
	r, doc := newTestRenderer(t)

	clicked := 0
	node := r.Mount(vdom.H("button",
		vdom.ClassName("destroy"),
		vdom.Prop("data-id", 7),
		vdom.Disabled(false),
		vdom.Hidden(true),
		vdom.Prop("title", nil),
		vdom.OnClick(func(*vdom.Event) { clicked++ }),
	), doc.Body()).(*host.Element)

	attrs := node.Attrs()
	if attrs["class"] != "destroy" {
		t.Errorf("class = %q", attrs["class"])
	}
	if attrs["data-id"] != "7" {
		t.Errorf("data-id = %q", attrs["data-id"])
	}
	if _, ok := attrs["disabled"]; ok {
		t.Error("false boolean should be absent")
	}
	if v, ok := attrs["hidden"]; !ok || v != "" {
		t.Errorf("hidden = %q, %v; want presence attribute", v, ok)
	}
	if _, ok := attrs["title"]; ok {
		t.Error("null value should be omitted")
	}
	if _, ok := attrs["onclick"]; ok {
		t.Error("handler must not be stored as an attribute")
	}

	doc.Dispatch(node.ID(), &vdom.Event{Type: "click"})
	if clicked != 1 {
		t.Errorf("clicked = %d, want 1", clicked)
	}
}

func TestMountMalformedAttributeSkipped(t *testing.T) {
	logger, buf := bufferLogger()
	doc := host.NewDocument()
	r := New(doc, WithLogger(logger))

	node := r.Mount(vdom.Div(
		vdom.Attr{Key: "onclick", Value: vdom.StringValue("alert(1)")},
		vdom.Attr{Key: "title", Value: vdom.HandlerValue(func(*vdom.Event) {})},
		vdom.ID("ok"),
	), doc.Body()).(*host.Element)

	if got := node.Attrs(); len(got) != 1 || got["id"] != "ok" {
		t.Errorf("attrs = %v, want only id", got)
	}
	if len(node.Handlers()) != 0 {
		t.Errorf("handlers = %v, want none", node.Handlers())
	}
	if !strings.Contains(buf.String(), "E103") {
		t.Errorf("expected E103 in log: %s", buf.String())
	}
}

func TestRefInvokedOnMountOnly(t *testing.T) {
	r, doc := newTestRenderer(t)

	var refs []any
	view := func(label string) []*vdom.VNode {
		return []*vdom.VNode{vdom.Input(vdom.Ref(func(n any) { refs = append(refs, n) }), vdom.Placeholder(label))}
	}

	container := mountAll(r, doc, view("a"))
	if len(refs) != 1 {
		t.Fatalf("ref calls after mount = %d, want 1", len(refs))
	}
	if refs[0] != r.Mounted(container)[0] {
		t.Error("ref did not receive the mounted host node")
	}

	r.Patch(container, view("a"), view("b"))
	if len(refs) != 1 {
		t.Errorf("ref calls after patch = %d, want 1", len(refs))
	}
	if _, ok := refs[0].(*host.Element).Attr("ref"); ok {
		t.Error("ref must not be a host attribute")
	}
}

func TestRefRunsAfterAttach(t *testing.T) {
	r, doc := newTestRenderer(t)

	var parent *host.Element
	r.Mount(vdom.Div(vdom.Input(vdom.Ref(func(n any) {
		parent = n.(*host.Element).Parent()
	}))), doc.Body())

	if parent == nil || parent.Parent() != doc.Body() {
		t.Error("ref ran before its subtree was attached")
	}
}
