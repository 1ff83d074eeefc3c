package wordledomain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

var ErrInvalidSince = errors.New("invalid scrape range")

// SinceAll is the scrape range that walks the whole channel history.
const SinceAll = "all"

// bare "2 weeks", "3 days" without "ago"
var bareAmountRe = regexp.MustCompile(`^\d+\s+(minute|hour|day|week|month|year)s?$`)

var sinceParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return w
}()

// ParseSince turns the scrape command argument into a cutoff instant. "all"
// (or empty) returns the zero time, meaning no cutoff. Go durations ("72h")
// and natural language ("2 weeks ago", "last monday", "3 days") are
// resolved relative to now.
func ParseSince(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" || s == SinceAll {
		return time.Time{}, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return time.Time{}, fmt.Errorf("%w: duration must be positive", ErrInvalidSince)
		}
		return now.Add(-d), nil
	}

	if bareAmountRe.MatchString(s) {
		s += " ago"
	}

	r, err := sinceParser.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSince, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: could not understand %q", ErrInvalidSince, input)
	}
	if r.Time.After(now) {
		return time.Time{}, fmt.Errorf("%w: %q is in the future", ErrInvalidSince, input)
	}
	return r.Time, nil
}
