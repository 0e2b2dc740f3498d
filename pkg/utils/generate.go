package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingReference creates a human-legible booking reference.
// Format: CM-YYYY-XXXXXXXX
func GenerateBookingReference(now time.Time) string {
	slug := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("CM-%d-%s", now.Year(), slug)
}
