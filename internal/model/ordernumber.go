package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Order numbers are a persisted, externally visible contract:
// OS-YYYY-NNNNN, year as 4 digits, sequence zero-padded to 5 digits.
// Sequences are per-year and never reclaimed, even when orders are deleted.

const orderNumberPrefix = "OS"

func FormatOrderNumber(year, seq int) string {
	return fmt.Sprintf("%s-%04d-%05d", orderNumberPrefix, year, seq)
}

// ParseOrderNumber splits an order number into its year and sequence.
// The sequence segment may exceed 5 digits once a year passes 99999 orders.
func ParseOrderNumber(number string) (year, seq int, err error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != orderNumberPrefix {
		return 0, 0, fmt.Errorf("malformed order number %q", number)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return 0, 0, fmt.Errorf("malformed year in order number %q", number)
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return 0, 0, fmt.Errorf("malformed sequence in order number %q", number)
	}
	return year, seq, nil
}
