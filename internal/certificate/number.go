package certificate

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberPrefix is the per-year prefix of membership numbers, e.g. "SESI-2025-".
func NumberPrefix(year int) string { return fmt.Sprintf("SESI-%d-", year) }

// NextNumber returns the membership number following last within year.
// An empty last starts the sequence at 0001.
func NextNumber(year int, last string) (string, error) {
	prefix := NumberPrefix(year)
	seq := 0
	if last != "" {
		if !strings.HasPrefix(last, prefix) {
			return "", fmt.Errorf("membership number %q outside year %d", last, year)
		}
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed membership number %q: %w", last, err)
		}
		seq = n
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

// FileName is the stored name of a member's certificate.
func FileName(membershipNumber string) string {
	return "SESI_Certificate_" + membershipNumber + ".pdf"
}
