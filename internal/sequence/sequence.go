// Package sequence produces the human-readable business identifiers used in
// all external-facing lookups (Cus0001M, Emp001, Order01, ...). The store's
// own primary keys are never exposed.
package sequence

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// ErrMalformedSequence is returned when the last assigned identifier cannot
// be parsed back into a number. Allocation must stop here: inventing a fresh
// identifier on top of corrupted state would hide the corruption.
var ErrMalformedSequence = errors.New("malformed sequence state")

// Policy describes one entity's identifier format. Width is the minimum
// number of digits; counters that outgrow it keep all their digits.
type Policy struct {
	Prefix string
	Suffix string
	Width  int
	Seed   int
}

// First returns the identifier assigned when no records exist yet.
func (p Policy) First() string {
	return p.Format(p.Seed)
}

// Format renders a counter value as a full identifier.
func (p Policy) Format(n int) string {
	return fmt.Sprintf("%s%0*d%s", p.Prefix, p.Width, n, p.Suffix)
}

// Next computes the identifier that follows last.
func (p Policy) Next(last string) (string, error) {
	n, err := p.Parse(last)
	if err != nil {
		return "", err
	}
	return p.Format(n + 1), nil
}

// Parse extracts the counter value from an identifier minted by this policy.
func (p Policy) Parse(id string) (int, error) {
	body, ok := strings.CutPrefix(id, p.Prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q lacks prefix %q", ErrMalformedSequence, id, p.Prefix)
	}
	if p.Suffix != "" {
		body, ok = strings.CutSuffix(body, p.Suffix)
		if !ok {
			return 0, fmt.Errorf("%w: %q lacks suffix %q", ErrMalformedSequence, id, p.Suffix)
		}
	}
	n, err := strconv.Atoi(body)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q has non-numeric counter %q", ErrMalformedSequence, id, body)
	}
	return n, nil
}

// Random returns a prefixed identifier with the given number of random
// digits, e.g. Random("PRD-", 6) -> "PRD-482913". The leading digit is never
// zero so the identifier length is stable. Collisions are possible; callers
// insert under a unique index and retry.
func Random(prefix string, digits int) string {
	low := 1
	for i := 1; i < digits; i++ {
		low *= 10
	}
	return prefix + strconv.Itoa(low+rand.Intn(9*low))
}
