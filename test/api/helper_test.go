//go:build e2e

package api_test

import (
	"fmt"
	"time"
)

// Helper function to generate unique names
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

func validDoctor() map[string]interface{} {
	return map[string]interface{}{
		"name":                 "Dr. Silva",
		"specialty":            "cardiologia",
		"appointmentPrice":     150,
		"availableFromWeekDay": "1",
		"availableToWeekDay":   "5",
		"availableFromTime":    "0",
		"availableToTime":      "10",
	}
}
