package assistant

import (
	"testing"
)

func TestParseFlightArgs(t *testing.T) {
	args := map[string]any{
		"from":       "DEL",
		"to":         "LHR",
		"departDate": "2026-09-10",
		"adults":     float64(2),
		"children":   float64(1),
	}

	c, err := parseFlightArgs(args)
	if err != nil {
		t.Fatalf("parseFlightArgs failed: %v", err)
	}
	if c.From != "DEL" || c.To != "LHR" || c.DepartDate != "2026-09-10" {
		t.Fatalf("unexpected criteria: %+v", c)
	}
	if c.Adults != 2 || c.Children != 1 {
		t.Fatalf("unexpected party: %+v", c)
	}
}

func TestParseFlightArgsRejectsBadTypes(t *testing.T) {
	cases := []map[string]any{
		{"to": "LHR", "departDate": "2026-09-10", "adults": float64(1)},
		{"from": "DEL", "to": "LHR", "departDate": "2026-09-10"},
		{"from": "DEL", "to": "LHR", "departDate": "2026-09-10", "adults": "two"},
		{"from": 1, "to": "LHR", "departDate": "2026-09-10", "adults": float64(1)},
	}
	for i, args := range cases {
		if _, err := parseFlightArgs(args); err == nil {
			t.Errorf("case %d: expected error for %v", i, args)
		}
	}
}

func TestParseHotelArgs(t *testing.T) {
	args := map[string]any{
		"cityCode":     "PAR",
		"checkInDate":  "2026-09-10",
		"checkOutDate": "2026-09-14",
		"adults":       float64(2),
	}

	c, err := parseHotelArgs(args)
	if err != nil {
		t.Fatalf("parseHotelArgs failed: %v", err)
	}
	if c.CityCode != "PAR" || c.CheckInDate != "2026-09-10" || c.CheckOutDate != "2026-09-14" || c.Adults != 2 {
		t.Fatalf("unexpected criteria: %+v", c)
	}
}

func TestParseHotelArgsRejectsMissingFields(t *testing.T) {
	if _, err := parseHotelArgs(map[string]any{
		"cityCode": "PAR",
		"adults":   float64(2),
	}); err == nil {
		t.Fatal("expected error for missing dates")
	}
}

func TestParseBookingArgs(t *testing.T) {
	if got := parseBookingArgs(map[string]any{"bookingBreakDown": "Flights: 500 USD"}); got != "Flights: 500 USD" {
		t.Fatalf("unexpected breakdown %q", got)
	}
	if got := parseBookingArgs(map[string]any{}); got != "Continue to book!" {
		t.Fatalf("unexpected fallback %q", got)
	}
}

func TestIntArgAcceptsIntAndFloat(t *testing.T) {
	if v, ok := intArg(map[string]any{"n": 3}, "n"); !ok || v != 3 {
		t.Fatalf("int not accepted: %v %v", v, ok)
	}
	if v, ok := intArg(map[string]any{"n": float64(3)}, "n"); !ok || v != 3 {
		t.Fatalf("float64 not accepted: %v %v", v, ok)
	}
	if _, ok := intArg(map[string]any{"n": "3"}, "n"); ok {
		t.Fatal("string should not be accepted")
	}
}
