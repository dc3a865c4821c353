package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"rustico-backend/models"
)

// Nights returns the length of a stay in nights, the ceiling of the
// calendar-day difference. Both ends are reduced to their calendar date
// first so DST transitions and the driver's session timezone cannot skew
// the count. Callers are responsible for passing a valid range; checkOut
// before checkIn yields zero or a negative count.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(out.Sub(in).Hours() / 24))
}

// CalculateTotalAmount computes the stored booking total from the booked
// services. Per-person services multiply by guest count only; the report
// renderer uses its own per-person formula (see reportLineAmount), the two
// deliberately stay separate.
func CalculateTotalAmount(checkIn, checkOut time.Time, svcs []models.Service, guestCount int) decimal.Decimal {
	nights := Nights(checkIn, checkOut)

	total := decimal.Zero
	for _, svc := range svcs {
		switch svc.Type {
		case models.ServiceTypeNightly:
			total = total.Add(svc.Price.Mul(decimal.NewFromInt(int64(nights))))
		case models.ServiceTypePerPerson:
			total = total.Add(svc.Price.Mul(decimal.NewFromInt(int64(guestCount))))
		default: // per_booking and unknown types charge flat
			total = total.Add(svc.Price)
		}
	}
	return total.Round(2)
}
