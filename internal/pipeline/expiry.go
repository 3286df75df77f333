package pipeline

import (
	"strings"
	"time"

	"licita/internal"
	"licita/internal/config"
)

// Date layouts tried in order; the first that parses wins. The relative
// order of the two ambiguous numeric layouts comes from EXPIRY_DATE_ORDER,
// never from locale guessing.
var (
	layoutsDMY = []string{"2006-01-02", "02/01/2006", "01/02/2006", "02-01-2006", "2006/01/02"}
	layoutsMDY = []string{"2006-01-02", "01/02/2006", "02/01/2006", "01-02-2006", "2006/01/02"}
)

type ExpiryEvaluator struct {
	cfg config.Config
}

func NewExpiryEvaluator(cfg config.Config) *ExpiryEvaluator {
	return &ExpiryEvaluator{cfg: cfg}
}

// Evaluate buckets a raw expiry string by days remaining relative to now.
// Missing or unparseable input degrades to a non-alerting state; the method
// never fails.
func (e *ExpiryEvaluator) Evaluate(raw string, now time.Time) internal.ExpiryResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return internal.ExpiryResult{State: internal.ExpiryNoDate}
	}

	layouts := layoutsDMY
	if e.cfg.ExpiryDateOrder == "mdy" {
		layouts = layoutsMDY
	}

	var expiry time.Time
	parsed := false
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			expiry = t
			parsed = true
			break
		}
	}
	if !parsed {
		return internal.ExpiryResult{State: internal.ExpiryInvalidFormat}
	}

	days := daysBetween(now, expiry)
	switch {
	case days < 0:
		return internal.ExpiryResult{State: internal.ExpiryExpired, DaysRemaining: days, Alert: true}
	case days <= e.cfg.NearExpiryDays:
		return internal.ExpiryResult{State: internal.ExpiryNear, DaysRemaining: days, Alert: true}
	case days <= e.cfg.WatchExpiryDays:
		return internal.ExpiryResult{State: internal.ExpiryWatch, DaysRemaining: days}
	default:
		return internal.ExpiryResult{State: internal.ExpiryCurrent, DaysRemaining: days}
	}
}

// daysBetween counts whole calendar days from now to then, negative when
// then is in the past.
func daysBetween(now, then time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(then.Year(), then.Month(), then.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
