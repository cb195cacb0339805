package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestLookups(t *testing.T) {
	t.Setenv("ENVUTIL_STR", " value ")
	t.Setenv("ENVUTIL_INT", "42")
	t.Setenv("ENVUTIL_BAD_INT", "x")
	t.Setenv("ENVUTIL_BOOL", "on")
	t.Setenv("ENVUTIL_DUR", "90s")
	t.Setenv("ENVUTIL_LIST", "a, b,,c ")

	if got := String("ENVUTIL_STR", "def", nil); got != "value" {
		t.Fatalf("String: got %q", got)
	}
	if got := String("ENVUTIL_MISSING", "def", nil); got != "def" {
		t.Fatalf("String default: got %q", got)
	}
	if got := Int("ENVUTIL_INT", 1, nil); got != 42 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int invalid: got %d", got)
	}
	if got := Bool("ENVUTIL_BOOL", false, nil); !got {
		t.Fatalf("Bool: got false")
	}
	if got := Duration("ENVUTIL_DUR", time.Second, nil); got != 90*time.Second {
		t.Fatalf("Duration: got %s", got)
	}
	if got := List("ENVUTIL_LIST", nil, nil); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("List: got %v", got)
	}
}
