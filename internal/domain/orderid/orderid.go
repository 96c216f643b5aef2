// Package orderid formats and parses human readable order identifiers.
//
// An identifier is the literal Prefix followed by the decimal sequence number
// without any padding, so AZS0009 is followed by AZS00010. Identifiers are not
// fixed width and must not be ordered as strings; callers compare sequences.
package orderid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefix is prepended to every sequence number.
const Prefix = "AZS000"

// First is the sequence number assigned when no order exists yet.
const First int64 = 1

// ErrMalformed is returned for identifiers that do not carry Prefix and a
// positive decimal sequence.
var ErrMalformed = errors.New("malformed order identifier")

// Format renders sequence n as an identifier.
func Format(n int64) string {
	return Prefix + strconv.FormatInt(n, 10)
}

// Parse extracts the sequence number from id.
func Parse(id string) (int64, error) {
	digits, ok := strings.CutPrefix(id, Prefix)
	if !ok || digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, id)
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	return n, nil
}

// Next returns the identifier following last. An empty last starts at First.
func Next(last string) (string, error) {
	if last == "" {
		return Format(First), nil
	}
	n, err := Parse(last)
	if err != nil {
		return "", err
	}
	return Format(n + 1), nil
}
