package config

import (
	"strconv"
	"strings"

	"github.com/n0needt0/goodies/check-mrtgtraf/internal/domain"
	"github.com/pkg/errors"
)

// parsePair splits an "incoming,outgoing" threshold value. Either half
// may be omitted and defaults to 0.
func parsePair(s string) (uint64, uint64, error) {
	if s == "" {
		return 0, 0, nil
	}

	parts := strings.SplitN(s, ",", 2)

	in, err := parseRate(parts[0])
	if err != nil {
		return 0, 0, err
	}

	var out uint64
	if len(parts) == 2 {
		if out, err = parseRate(parts[1]); err != nil {
			return 0, 0, err
		}
	}

	return in, out, nil
}

// parseRate parses a single bytes/sec threshold. An empty value is 0.
func parseRate(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, domain.UsageError{Err: errors.Wrapf(err, "invalid threshold %q", s)}
	}
	return n, nil
}

func parseExpires(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, domain.UsageError{Err: errors.Errorf("invalid expire minutes %q", s)}
	}
	return n, nil
}
