package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velectro/voicelead/backend/internal/application/services"
)

func TestInterviewScript_Prompt(t *testing.T) {
	script := services.NewInterviewScript()

	assert.Equal(t, 5, script.Len())

	first, done := script.Prompt(0)
	assert.False(t, done)
	assert.Contains(t, first, "electronics")

	last, done := script.Prompt(script.Len() - 1)
	assert.False(t, done)
	assert.Contains(t, last, "brand")

	// Every in-range prompt is distinct.
	seen := map[string]bool{}
	for i := 0; i < script.Len(); i++ {
		q, done := script.Prompt(i)
		assert.False(t, done)
		assert.False(t, seen[q], "duplicate question at index %d", i)
		seen[q] = true
	}
}

func TestInterviewScript_Closing(t *testing.T) {
	script := services.NewInterviewScript()

	closing, done := script.Prompt(script.Len())
	assert.True(t, done)
	assert.Contains(t, closing, "Thank you for your responses")

	// Any index past the end, and negative indexes, yield the closing.
	farOut, done := script.Prompt(42)
	assert.True(t, done)
	assert.Equal(t, closing, farOut)

	negative, done := script.Prompt(-1)
	assert.True(t, done)
	assert.Equal(t, closing, negative)
}
