package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingReference(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	ref := GenerateBookingReference(now)
	assert.Regexp(t, `^CM-2026-[0-9A-F]{8}$`, ref)

	// References must be unique across calls.
	assert.NotEqual(t, ref, GenerateBookingReference(now))
}
