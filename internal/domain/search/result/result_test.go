package result

import (
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	r := New(3, "Jumanji", 0.42)

	if r.Position() != 3 {
		t.Errorf("Position() = %d", r.Position())
	}
	if r.Title() != "Jumanji" {
		t.Errorf("Title() = %q", r.Title())
	}
	if r.Score() != 0.42 {
		t.Errorf("Score() = %f", r.Score())
	}
}

func TestTitles(t *testing.T) {
	got := Titles([]Result{New(2, "B", 0.9), New(0, "A", 0.5)})
	if !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("Titles() = %v", got)
	}
}

func TestTitles_Empty(t *testing.T) {
	got := Titles(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Titles(nil) = %#v, want empty non-nil slice", got)
	}
}
