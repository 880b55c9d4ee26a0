package flow

import (
	"fmt"
	"strconv"
	"strings"
)

// Validator normalises an answer. When ok is false the problem text is sent
// back to the user; an empty problem repeats the step prompt.
type Validator func(text string) (value string, problem string, ok bool)

// NonEmpty accepts any text that is not blank after trimming
func NonEmpty() Validator {
	return func(text string) (string, string, bool) {
		value := strings.TrimSpace(text)
		if value == "" {
			return "", "", false
		}
		return value, "", true
	}
}

// IntInRange accepts integers inside [lo, hi]
func IntInRange(lo, hi int, belowMin, aboveMax string) Validator {
	return func(text string) (string, string, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return "", "❌ Please enter a valid number. Try again:", false
		}
		if n < lo {
			return "", belowMin, false
		}
		if n > hi {
			return "", aboveMax, false
		}
		return strconv.Itoa(n), "", true
	}
}

// TeamCount is the team cap validator used by the tournament wizard
func TeamCount(min, max int) Validator {
	return IntInRange(min, max,
		fmt.Sprintf("❌ Minimum %d teams required. Try again:", min),
		fmt.Sprintf("❌ Maximum %d teams allowed. Try again:", max),
	)
}

// Matches accepts trimmed text for which match returns true
func Matches(match func(string) bool, problem string) Validator {
	return func(text string) (string, string, bool) {
		value := strings.TrimSpace(text)
		if !match(value) {
			return "", problem, false
		}
		return value, "", true
	}
}
