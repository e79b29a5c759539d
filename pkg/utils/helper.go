package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseDate parses a YYYY-MM-DD query parameter with default value
func ParseDate(value string, defaultValue time.Time) time.Time {
	if value == "" {
		return defaultValue
	}

	result, err := time.Parse("2006-01-02", value)
	if err != nil {
		return defaultValue
	}

	return result
}
