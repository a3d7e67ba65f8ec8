package domain

import (
	"fmt"
	"math"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ParseBetSide validates and converts a raw side value.
func ParseBetSide(raw string) (BetSide, error) {
	switch BetSide(raw) {
	case BetSideHome, BetSideAway:
		return BetSide(raw), nil
	default:
		return "", fmt.Errorf(`side must be "home" or "away"`)
	}
}

// ValidateStake checks that a stake is a finite positive number.
func ValidateStake(stake float64) error {
	if math.IsNaN(stake) || math.IsInf(stake, 0) || stake <= 0 {
		return fmt.Errorf("stake must be a positive number")
	}
	return nil
}
