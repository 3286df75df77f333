package pipeline

import (
	"testing"
	"time"

	"licita/internal"
)

var expiryNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestExpiryStates(t *testing.T) {
	e := NewExpiryEvaluator(testConfig())

	cases := []struct {
		name      string
		raw       string
		wantState internal.ExpiryState
		wantDays  int
		wantAlert bool
	}{
		{name: "no date", raw: "", wantState: internal.ExpiryNoDate},
		{name: "invalid", raw: "pronto", wantState: internal.ExpiryInvalidFormat},
		{name: "expired yesterday", raw: "31/05/2025", wantState: internal.ExpiryExpired, wantDays: -1, wantAlert: true},
		{name: "near boundary", raw: "01/07/2025", wantState: internal.ExpiryNear, wantDays: 30, wantAlert: true},
		{name: "just past near", raw: "02/07/2025", wantState: internal.ExpiryWatch, wantDays: 31},
		{name: "watch boundary", raw: "30/08/2025", wantState: internal.ExpiryWatch, wantDays: 90},
		{name: "current", raw: "2025-09-15", wantState: internal.ExpiryCurrent, wantDays: 106},
		{name: "same day", raw: "01/06/2025", wantState: internal.ExpiryNear, wantDays: 0, wantAlert: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Evaluate(tc.raw, expiryNow)
			if got.State != tc.wantState {
				t.Fatalf("state = %s, want %s", got.State, tc.wantState)
			}
			if got.DaysRemaining != tc.wantDays {
				t.Fatalf("days = %d, want %d", got.DaysRemaining, tc.wantDays)
			}
			if got.Alert != tc.wantAlert {
				t.Fatalf("alert = %v, want %v", got.Alert, tc.wantAlert)
			}
		})
	}
}

func TestExpiryDateOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	dmy := NewExpiryEvaluator(testConfig())
	got := dmy.Evaluate("03/04/2025", now)
	if got.State != internal.ExpiryWatch || got.DaysRemaining != 33 {
		t.Fatalf("dmy read = %+v, want watch in 33 days", got)
	}

	cfg := testConfig()
	cfg.ExpiryDateOrder = "mdy"
	mdy := NewExpiryEvaluator(cfg)
	got = mdy.Evaluate("03/04/2025", now)
	if got.State != internal.ExpiryNear || got.DaysRemaining != 3 {
		t.Fatalf("mdy read = %+v, want near in 3 days", got)
	}
}

func TestExpiryIsoAlwaysWins(t *testing.T) {
	cfg := testConfig()
	cfg.ExpiryDateOrder = "mdy"
	e := NewExpiryEvaluator(cfg)

	got := e.Evaluate("2025-09-15", expiryNow)
	if got.State != internal.ExpiryCurrent || got.DaysRemaining != 106 {
		t.Fatalf("iso read = %+v", got)
	}
}
