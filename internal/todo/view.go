package todo

import (
	"strconv"

	. "github.com/vango-dev/minifw/pkg/vdom"
)

// View renders the list into the todoapp section.
func (t *Todo) View() []*VNode {
	s := t.store.GetState()
	list := items(s)
	filter, _ := s[keyFilter].(string)
	editing := intOf(s[keyEditing], 0)

	return []*VNode{
		t.header(),
		If(len(list) > 0, t.main(list, filter, editing)),
		If(len(list) > 0, t.footer(list, filter)),
	}
}

func (t *Todo) header() *VNode {
	return Header(Class("header"),
		H1("todos"),
		Input(
			Class("new-todo"),
			Placeholder("What needs to be done?"),
			Autofocus(),
			OnKeyDown(func(e *Event) {
				if e.Key == "Enter" {
					t.Add(e.Value)
				}
			}),
		),
	)
}

func (t *Todo) main(list []Item, filter string, editing int) *VNode {
	allDone := true
	for _, it := range list {
		allDone = allDone && it.Done
	}

	return Section(Class("main"),
		Input(
			ID("toggle-all"),
			Class("toggle-all"),
			Type("checkbox"),
			Checked(allDone),
			OnChange(func(e *Event) { t.ToggleAll(e.Checked) }),
		),
		Label(Prop("for", "toggle-all"), "Mark all as complete"),
		Ul(Class("todo-list"),
			Range(visible(list, filter), func(it Item, _ int) *VNode {
				return t.item(it, it.ID == editing)
			}),
		),
	)
}

func (t *Todo) item(it Item, editing bool) *VNode {
	id := it.ID
	return Li(
		Classes(map[string]bool{"completed": it.Done, "editing": editing}),
		Data("id", strconv.Itoa(id)),
		Div(Class("view"),
			Input(
				Class("toggle"),
				Type("checkbox"),
				Checked(it.Done),
				OnChange(func(*Event) { t.Toggle(id) }),
			),
			Label(
				OnDblClick(func(*Event) { t.StartEdit(id) }),
				it.Title,
			),
			Button(Class("destroy"), OnClick(func(*Event) { t.Remove(id) })),
		),
		If(editing, Input(
			Class("edit"),
			ValueAttr(it.Title),
			AttrIf(t.focus != nil, Ref(func(node any) { t.focus(node) })),
			OnKeyDown(func(e *Event) {
				switch e.Key {
				case "Enter":
					t.Edit(id, e.Value)
				case "Escape":
					t.CancelEdit()
				}
			}),
			OnBlur(func(e *Event) { t.Edit(id, e.Value) }),
		)),
	)
}

func (t *Todo) footer(list []Item, filter string) *VNode {
	active, done := 0, 0
	for _, it := range list {
		if it.Done {
			done++
		} else {
			active++
		}
	}
	unit := " items left"
	if active == 1 {
		unit = " item left"
	}

	return Footer(Class("footer"),
		Span(Class("todo-count"), Strong(strconv.Itoa(active)), unit),
		Ul(Class("filters"),
			t.filterLink("/", "All", filter == FilterAll),
			t.filterLink("/active", "Active", filter == FilterActive),
			t.filterLink("/completed", "Completed", filter == FilterCompleted),
		),
		If(done > 0, Button(
			Class("clear-completed"),
			OnClick(func(*Event) { t.ClearCompleted() }),
			"Clear completed",
		)),
	)
}

func (t *Todo) filterLink(path, label string, selected bool) *VNode {
	return Li(A(
		ClassIf(selected, "selected"),
		Href(t.linkPrefix+path),
		OnClick(func(e *Event) {
			e.PreventDefault()
			t.Navigate(path)
		}),
		label,
	))
}
