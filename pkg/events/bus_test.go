package events

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBusOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.On("save", func(data any) { got = append(got, "a:"+data.(string)) })
	b.On("save", func(data any) { got = append(got, "b:"+data.(string)) })
	b.On("other", func(any) { got = append(got, "other") })

	b.Emit("save", "x")
	b.Emit("missing", nil)

	if diff := cmp.Diff([]string{"a:x", "b:x"}, got); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestBusOff(t *testing.T) {
	b := NewBus()
	n := 0
	off := b.On("tick", func(any) { n++ })

	b.Emit("tick", nil)
	off()
	off()
	b.Emit("tick", nil)

	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
	if b.Has("tick") {
		t.Error("Has(tick) after last handler removed")
	}
}

func TestBusOffKeepsOthers(t *testing.T) {
	b := NewBus()
	var got []int
	b.On("e", func(any) { got = append(got, 1) })
	off := b.On("e", func(any) { got = append(got, 2) })
	b.On("e", func(any) { got = append(got, 3) })
	off()

	b.Emit("e", nil)
	if diff := cmp.Diff([]int{1, 3}, got); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestBusOnce(t *testing.T) {
	b := NewBus()
	var got []any
	b.Once("ready", func(data any) { got = append(got, data) })

	if !b.Has("ready") {
		t.Fatal("Has(ready) = false before emit")
	}
	b.Emit("ready", 1)
	b.Emit("ready", 2)

	if diff := cmp.Diff([]any{1}, got); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if b.Has("ready") {
		t.Error("Has(ready) after once fired")
	}
}

func TestBusOnceReentrantEmit(t *testing.T) {
	b := NewBus()
	n := 0
	b.Once("e", func(any) {
		n++
		b.Emit("e", nil)
	})
	b.Emit("e", nil)
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}

func TestBusOnceOffBeforeEmit(t *testing.T) {
	b := NewBus()
	n := 0
	off := b.Once("e", func(any) { n++ })
	off()
	b.Emit("e", nil)
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}

func TestBusNilHandler(t *testing.T) {
	b := NewBus()
	off := b.On("e", nil)
	off()
	if b.Has("e") {
		t.Error("nil handler registered")
	}
}
