package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitsSetVisitedIsIdempotent(t *testing.T) {
	var v Visits
	assert.Empty(t, v.Visited())

	v.SetVisited("b")
	v.SetVisited("a")
	v.SetVisited("b")

	assert.Equal(t, []string{"a", "b"}, v.Visited())
	assert.True(t, v.IsVisited("a"))
	assert.False(t, v.IsVisited("c"))
}

func TestVisitsAcceptsUnknownNames(t *testing.T) {
	d := NewUserDTO()
	d.SetVisited("not_a_field")
	assert.Equal(t, []string{"not_a_field"}, d.Visited())
}
