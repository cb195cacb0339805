package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

var errMissing = errors.New("missing")

func TestClassifierFrom(t *testing.T) {
	c := NewClassifier(Rule{Target: errMissing, Status: http.StatusNotFound, Code: "not_found"})

	got := c.From(fmt.Errorf("load user: %w", errMissing))
	if got.Status != http.StatusNotFound || got.Code != "not_found" {
		t.Fatalf("unexpected classification: %+v", got)
	}
	if !errors.Is(got, errMissing) {
		t.Fatalf("classified error lost its cause")
	}

	explicit := New(http.StatusTeapot, "teapot", errMissing)
	if c.From(fmt.Errorf("wrapped: %w", explicit)) != explicit {
		t.Fatalf("expected explicit *Error to pass through")
	}

	fallback := c.From(errors.New("boom"))
	if fallback.Status != http.StatusInternalServerError || fallback.Code != "internal_error" {
		t.Fatalf("unexpected fallback: %+v", fallback)
	}
	if c.From(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
