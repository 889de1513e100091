package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, false},
		{"text node", Text("hello"), false},
		{"element without handlers", Div(Class("test")), false},
		{"element with onclick", Button(OnClick(func(*Event) {})), true},
		{"nil handler is dropped", Button(OnClick(nil)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeTag(t *testing.T) {
	if got := Text("x").NodeTag(); got != TextTag {
		t.Errorf("text NodeTag() = %q, want %q", got, TextTag)
	}
	if got := Li().NodeTag(); got != "li" {
		t.Errorf("li NodeTag() = %q", got)
	}
	var nilNode *VNode
	if got := nilNode.NodeTag(); got != "" {
		t.Errorf("nil NodeTag() = %q", got)
	}
}

func TestHandlerKeys(t *testing.T) {
	tests := []struct {
		key       string
		isHandler bool
		event     string
	}{
		{"onclick", true, "click"},
		{"onKeyDown", true, "keydown"},
		{"ONBLUR", true, "blur"},
		{"on", false, ""},
		{"one", true, "e"},
		{"class", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsHandlerKey(tt.key); got != tt.isHandler {
				t.Errorf("IsHandlerKey(%q) = %v, want %v", tt.key, got, tt.isHandler)
			}
			if got := EventName(tt.key); got != tt.event {
				t.Errorf("EventName(%q) = %q, want %q", tt.key, got, tt.event)
			}
		})
	}
}

func TestHFlattensChildren(t *testing.T) {
	items := []*VNode{Li("a"), nil, Li("b")}
	node := Ul(
		ClassName("list"),
		items,
		[]any{Li("c"), nil, []any{"d", 7}},
		nil,
	)

	var got []string
	for _, c := range node.Children {
		if c.IsText() {
			got = append(got, "text:"+c.Text)
		} else {
			got = append(got, c.Tag+":"+c.Children[0].Text)
		}
	}
	want := []string{"li:a", "li:b", "li:c", "text:d", "text:7"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	if node.Attrs["className"].Str != "list" {
		t.Errorf("className = %v", node.Attrs["className"])
	}
}

func TestHAttributeForms(t *testing.T) {
	node := Input(
		[]Attr{Type("checkbox"), Checked(true)},
		Attrs{"data-id": StringValue("3")},
		AttrIf(false, Disabled(true)),
		ClassIf(false, "x"),
	)
	keys := node.Attrs.SortedKeys()
	want := []string{"checked", "data-id", "type"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	single := Normalize(Div())
	if len(single) != 1 {
		t.Fatalf("Normalize(single) len = %d, want 1", len(single))
	}

	list := Normalize([]*VNode{Div(), nil, Span()}, nil, "tail")
	if len(list) != 3 {
		t.Fatalf("Normalize(list) len = %d, want 3", len(list))
	}
	if !list[2].IsText() || list[2].Text != "tail" {
		t.Errorf("expected trailing text node, got %+v", list[2])
	}
}

func TestRange(t *testing.T) {
	nodes := Range([]string{"a", "", "c"}, func(s string, i int) *VNode {
		if s == "" {
			return nil
		}
		return Li(Textf("%d:%s", i, s))
	})
	if len(nodes) != 2 {
		t.Fatalf("len = %d, want 2", len(nodes))
	}
	if nodes[1].Children[0].Text != "2:c" {
		t.Errorf("text = %q", nodes[1].Children[0].Text)
	}
}
