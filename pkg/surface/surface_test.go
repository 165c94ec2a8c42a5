package surface

import (
	"errors"
	"testing"
)

func TestTree_AppendRemove(t *testing.T) {
	tree := NewTree()
	a := NewElement("div")
	b := NewElement("div")

	tree.Append(a)
	tree.Append(b)

	if tree.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tree.Len())
	}
	if !a.Attached() || !tree.Contains(a) {
		t.Error("a should be attached")
	}

	if err := tree.Remove(a); err != nil {
		t.Fatalf("Remove(a) returned error: %v", err)
	}
	if a.Attached() {
		t.Error("a still reports attached after removal")
	}
	if got := tree.Elements(); len(got) != 1 || got[0] != b {
		t.Errorf("Elements() = %v, want [b]", got)
	}
}

func TestTree_RemoveDetachedDoesNotPanic(t *testing.T) {
	tree := NewTree()
	el := NewElement("div")

	if err := tree.Remove(el); !errors.Is(err, ErrDetached) {
		t.Errorf("Remove(never attached) = %v, want ErrDetached", err)
	}

	tree.Append(el)
	_ = tree.Remove(el)
	if err := tree.Remove(el); !errors.Is(err, ErrDetached) {
		t.Errorf("second Remove() = %v, want ErrDetached", err)
	}
}

func TestTree_FocusAndSelect(t *testing.T) {
	tree := NewTree()
	first := NewElement("input")
	area := NewElement("textarea")
	area.SetValue("https://example.com")
	tree.Append(first)
	tree.Append(area)

	if err := tree.Focus(first); err != nil {
		t.Fatalf("Focus(first): %v", err)
	}
	if err := tree.Focus(area); err != nil {
		t.Fatalf("Focus(area): %v", err)
	}
	if first.Focused() {
		t.Error("focus did not leave the first element")
	}
	if tree.Focused() != area {
		t.Error("Focused() should be the textarea")
	}

	sel, err := tree.Select(area)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel != "https://example.com" || !area.Selected() {
		t.Errorf("Select() = %q, selected=%v", sel, area.Selected())
	}

	_ = tree.Remove(area)
	if tree.Focused() != nil {
		t.Error("removing the focused element should clear focus")
	}
	if _, err := tree.Select(area); !errors.Is(err, ErrDetached) {
		t.Errorf("Select(detached) = %v, want ErrDetached", err)
	}
}

func TestTree_WatchEvents(t *testing.T) {
	tree := NewTree()
	var kinds []EventKind
	tree.Watch(func(ev Event) { kinds = append(kinds, ev.Kind) })

	el := NewElement("div")
	el.SetText("not attached yet")
	tree.Append(el)
	el.SetStyle("opacity", "1")
	_ = tree.Remove(el)

	want := []EventKind{Attached, Changed, Detached}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestElement_Classes(t *testing.T) {
	el := NewElement("div")
	el.AddClass("toast-notification", "toast-info", "toast-info")
	if got := el.ClassName(); got != "toast-info toast-notification" {
		t.Errorf("ClassName() = %q", got)
	}
	el.RemoveClass("toast-info")
	if el.HasClass("toast-info") {
		t.Error("class not removed")
	}
}

func TestLoadingState(t *testing.T) {
	btn := NewElement("button")

	ShowLoading(btn)
	if !btn.HasClass(ClassLoading) || btn.Style(StylePointerMode) != "none" {
		t.Errorf("ShowLoading: class=%q pointer=%q", btn.ClassName(), btn.Style(StylePointerMode))
	}

	HideLoading(btn)
	if btn.HasClass(ClassLoading) || btn.Style(StylePointerMode) != "auto" {
		t.Errorf("HideLoading: class=%q pointer=%q", btn.ClassName(), btn.Style(StylePointerMode))
	}
}
