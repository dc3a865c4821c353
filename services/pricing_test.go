package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rustico-backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	cases := []struct {
		checkIn, checkOut time.Time
		want              int
	}{
		{date(2025, 7, 1), date(2025, 7, 2), 1},
		{date(2025, 7, 1), date(2025, 7, 4), 3},
		{date(2025, 12, 30), date(2026, 1, 2), 3},
		{date(2025, 7, 1), date(2025, 7, 1), 0},
	}
	for _, tc := range cases {
		if got := Nights(tc.checkIn, tc.checkOut); got != tc.want {
			t.Errorf("Nights(%s, %s) = %d, want %d",
				tc.checkIn.Format("2006-01-02"), tc.checkOut.Format("2006-01-02"), got, tc.want)
		}
	}
}

// Date columns can come back from the driver as local-midnight times.
// A stay spanning the fall DST transition is 73 wall-clock hours for a
// 3-calendar-day range; the count must stay at 3.
func TestNightsAcrossDSTTransition(t *testing.T) {
	cest := time.FixedZone("CEST", 2*3600)
	cet := time.FixedZone("CET", 1*3600)

	checkIn := time.Date(2025, 10, 24, 0, 0, 0, 0, cest)
	checkOut := time.Date(2025, 10, 27, 0, 0, 0, 0, cet)
	if got := Nights(checkIn, checkOut); got != 3 {
		t.Errorf("fall transition: Nights = %d, want 3", got)
	}

	// spring forward: 71 wall-clock hours, still 3 nights
	checkIn = time.Date(2025, 3, 28, 0, 0, 0, 0, cet)
	checkOut = time.Date(2025, 3, 31, 0, 0, 0, 0, cest)
	if got := Nights(checkIn, checkOut); got != 3 {
		t.Errorf("spring transition: Nights = %d, want 3", got)
	}
}

func TestCalculateTotalAmount(t *testing.T) {
	svcs := []models.Service{
		{Name: "Übernachtung", Price: decimal.RequireFromString("120.00"), Type: models.ServiceTypeNightly},
		{Name: "Kurtaxe", Price: decimal.RequireFromString("3.50"), Type: models.ServiceTypePerPerson},
		{Name: "Holz", Price: decimal.RequireFromString("25.00"), Type: models.ServiceTypePerBooking},
	}

	// 3 nights, 2 guests: 3*120 + 2*3.50 + 25 = 392.00
	total := CalculateTotalAmount(date(2025, 7, 1), date(2025, 7, 4), svcs, 2)
	if total.StringFixed(2) != "392.00" {
		t.Fatalf("total = %s, want 392.00", total.StringFixed(2))
	}
}

func TestCalculateTotalAmountPerPersonIgnoresNights(t *testing.T) {
	svcs := []models.Service{
		{Name: "Kurtaxe", Price: decimal.RequireFromString("3.50"), Type: models.ServiceTypePerPerson},
	}
	total := CalculateTotalAmount(date(2025, 7, 1), date(2025, 7, 8), svcs, 3)
	if total.StringFixed(2) != "10.50" {
		t.Fatalf("per-person total = %s, want 10.50", total.StringFixed(2))
	}
}

func TestCalculateTotalAmountUnknownTypeChargesFlat(t *testing.T) {
	svcs := []models.Service{
		{Name: "Sonstiges", Price: decimal.RequireFromString("42.00"), Type: "mystery"},
	}
	total := CalculateTotalAmount(date(2025, 7, 1), date(2025, 7, 4), svcs, 5)
	if total.StringFixed(2) != "42.00" {
		t.Fatalf("unknown type total = %s, want 42.00", total.StringFixed(2))
	}
}
