// Package validation checks values that reach the simulation from outside:
// vessel names from configuration files and control inputs from players and
// scripted crews.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxVesselNameLen bounds the names shown in status lines and logs
const MaxVesselNameLen = 32

var (
	ErrInvalidName      = errors.New("invalid vessel name")
	ErrInvalidAim       = errors.New("invalid aim")
	ErrInvalidDirection = errors.New("invalid control direction")
)

// Allow alphanumeric, spaces, hyphens, underscores, and basic punctuation
var validVesselNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.<>()]+$`)

// ValidateVesselName validates a vessel name and returns it trimmed
func ValidateVesselName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxVesselNameLen {
		return "", fmt.Errorf("%w: too long, %d characters (max %d)", ErrInvalidName, len(name), MaxVesselNameLen)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrInvalidName)
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name cannot be only whitespace", ErrInvalidName)
	}

	// Control characters would corrupt a raw terminal
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %q contains control characters", ErrInvalidName, trimmed)
		}
	}

	if !validVesselNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q contains invalid characters", ErrInvalidName, trimmed)
	}

	return trimmed, nil
}

// ValidateAim checks an aim heading in radians and distance in world units
func ValidateAim(heading, distance float64) error {
	if math.IsNaN(heading) || math.IsInf(heading, 0) {
		return fmt.Errorf("%w: heading %v is not finite", ErrInvalidAim, heading)
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return fmt.Errorf("%w: distance %v is not finite", ErrInvalidAim, distance)
	}
	if distance < 0 {
		return fmt.Errorf("%w: distance %v is negative", ErrInvalidAim, distance)
	}
	return nil
}

// ValidateDirection checks a steer or throttle value: 0 for none, 1 and 2
// for the two directions.
func ValidateDirection(value int8) error {
	if value < 0 || value > 2 {
		return fmt.Errorf("%w: %d (must be 0-2)", ErrInvalidDirection, value)
	}
	return nil
}
