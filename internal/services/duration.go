package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/decypher/internal/entities"
)

// ParseElapsed parses an elapsed-time string. Accepted forms:
//
//	1m30s              Go duration
//	[D ]HH:MM:SS[.f]   days, hours, minutes, seconds with optional fraction
//	MM:SS[.f]          minutes and seconds
//	95.5               seconds
func ParseElapsed(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, entities.NewValidationError("duration", "must not be empty")
	}

	d, err := parseElapsed(s)
	if err != nil {
		return 0, entities.NewValidationError("duration", fmt.Sprintf("cannot parse %q", s))
	}
	if d < 0 {
		return 0, entities.NewValidationError("duration", "must not be negative")
	}
	return d, nil
}

func parseElapsed(s string) (time.Duration, error) {
	if !strings.Contains(s, ":") {
		if seconds, err := strconv.ParseFloat(s, 64); err == nil {
			if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
				return 0, fmt.Errorf("invalid seconds %q", s)
			}
			return floatSeconds(seconds), nil
		}
		return time.ParseDuration(s)
	}

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var days int64
	if dayPart, clock, ok := strings.Cut(s, " "); ok {
		n, err := parseClockField(strings.TrimSpace(dayPart), -1)
		if err != nil {
			return 0, err
		}
		days = n
		s = strings.TrimSpace(clock)
	}

	parts := strings.Split(s, ":")
	var hours, minutes int64
	var secondsPart string
	switch len(parts) {
	case 2:
		secondsPart = parts[1]
		m, err := parseClockField(parts[0], -1)
		if err != nil {
			return 0, err
		}
		minutes = m
	case 3:
		secondsPart = parts[2]
		h, err := parseClockField(parts[0], -1)
		if err != nil {
			return 0, err
		}
		m, err := parseClockField(parts[1], 59)
		if err != nil {
			return 0, err
		}
		hours, minutes = h, m
	default:
		return 0, fmt.Errorf("unexpected clock format")
	}

	seconds, err := strconv.ParseFloat(secondsPart, 64)
	if err != nil || strings.ContainsAny(secondsPart, "+-") || math.IsNaN(seconds) || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("invalid seconds %q", secondsPart)
	}

	total := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		floatSeconds(seconds)
	if negative {
		total = -total
	}
	return total, nil
}

// parseClockField parses a non-negative integer field, bounded by max when max >= 0.
func parseClockField(s string, max int64) (int64, error) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, fmt.Errorf("invalid clock field %q", s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 || (max >= 0 && n > max) {
		return 0, fmt.Errorf("invalid clock field %q", s)
	}
	return n, nil
}

func floatSeconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
