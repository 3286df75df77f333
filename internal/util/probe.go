package util

import (
	"fmt"
	"strconv"
	"strings"

	"licita/internal"
)

// Probe returns the first non-empty value among the candidate columns, in
// probe order. This is the single sanctioned way to read schema-less rows.
func Probe(row internal.RawRecord, keys ...string) (string, bool) {
	for _, key := range keys {
		value, ok := row[key]
		if !ok {
			continue
		}
		s := Stringify(value)
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// ProbeInt probes the candidate columns for a numeric value, tolerating
// float-formatted strings ("45.0"). Columns whose value does not parse are
// skipped, matching the probe-until-parseable behavior of the source data.
func ProbeInt(row internal.RawRecord, keys ...string) (int, bool) {
	for _, key := range keys {
		value, ok := row[key]
		if !ok {
			continue
		}
		s := Stringify(value)
		if s == "" {
			continue
		}
		parsed, err := ParseNumber(s)
		if err != nil {
			continue
		}
		return int(parsed), true
	}
	return 0, false
}

// ParseNumber parses a cell that should hold a number. Decimal commas are
// accepted; anything else is an error for the caller to collapse to absent.
func ParseNumber(s string) (float64, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if compact == "" {
		return 0, fmt.Errorf("empty number")
	}
	if parsed, err := strconv.ParseFloat(compact, 64); err == nil {
		return parsed, nil
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strconv.ParseFloat(strings.ReplaceAll(compact, ",", "."), 64)
	}
	return 0, fmt.Errorf("unparsable number: %q", s)
}
