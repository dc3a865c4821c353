package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rustico-backend/apperr"
	"rustico-backend/models"
)

func TestCreateBookingComputesTotal(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)

	primary := createGuest(t, db, "Anna", "Meier")
	extra := createGuest(t, db, "Bruno", "Zeller")
	nightly := createService(t, db, "Übernachtung", "120.00", models.ServiceTypeNightly)
	kurtaxe := createService(t, db, "Kurtaxe", "3.50", models.ServiceTypePerPerson)
	holz := createService(t, db, "Holz", "25.00", models.ServiceTypePerBooking)

	booking, err := svc.Create(CreateBookingInput{
		CheckIn:            "2025-07-01",
		CheckOut:           "2025-07-04",
		PrimaryGuestID:     primary.ID,
		AdditionalGuestIDs: []string{extra.ID},
		ServiceIDs:         []string{nightly.ID, kurtaxe.ID, holz.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 3 nights, 2 guests: 360 + 7 + 25
	if booking.TotalAmount.StringFixed(2) != "392.00" {
		t.Errorf("total = %s, want 392.00", booking.TotalAmount.StringFixed(2))
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
	if booking.Currency != "CHF" {
		t.Errorf("currency = %s, want CHF", booking.Currency)
	}
	if len(booking.AdditionalGuests) != 1 || len(booking.Services) != 3 {
		t.Errorf("relations not loaded: %d guests, %d services", len(booking.AdditionalGuests), len(booking.Services))
	}
	if ref := booking.Reference(); len(ref) != 8 {
		t.Errorf("reference %q should be 8 characters", ref)
	}
}

func TestCreateBookingDropsUnknownIDs(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)

	primary := createGuest(t, db, "Anna", "Meier")
	kurtaxe := createService(t, db, "Kurtaxe", "3.50", models.ServiceTypePerPerson)

	booking, err := svc.Create(CreateBookingInput{
		CheckIn:            "2025-07-01",
		CheckOut:           "2025-07-03",
		PrimaryGuestID:     primary.ID,
		AdditionalGuestIDs: []string{"00000000-0000-0000-0000-000000000000"},
		ServiceIDs:         []string{kurtaxe.ID, "11111111-1111-1111-1111-111111111111"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(booking.AdditionalGuests) != 0 {
		t.Errorf("unknown additional guest should be dropped, got %d", len(booking.AdditionalGuests))
	}
	if len(booking.Services) != 1 {
		t.Errorf("unknown service should be dropped, got %d services", len(booking.Services))
	}
	// guest count 1, so 3.50 flat
	if booking.TotalAmount.StringFixed(2) != "3.50" {
		t.Errorf("total = %s, want 3.50", booking.TotalAmount.StringFixed(2))
	}
}

func TestCreateBookingValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	primary := createGuest(t, db, "Anna", "Meier")

	_, err := svc.Create(CreateBookingInput{
		CheckIn:        "2025-07-04",
		CheckOut:       "2025-07-01",
		PrimaryGuestID: primary.ID,
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("inverted range: err = %v, want ErrValidation", err)
	}

	_, err = svc.Create(CreateBookingInput{
		CheckIn:        "not-a-date",
		CheckOut:       "2025-07-01",
		PrimaryGuestID: primary.ID,
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad date: err = %v, want ErrValidation", err)
	}

	_, err = svc.Create(CreateBookingInput{
		CheckIn:        "2025-07-01",
		CheckOut:       "2025-07-04",
		PrimaryGuestID: "22222222-2222-2222-2222-222222222222",
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing primary guest: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateBookingRecomputesTotal(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)

	primary := createGuest(t, db, "Anna", "Meier")
	nightly := createService(t, db, "Übernachtung", "120.00", models.ServiceTypeNightly)

	booking, err := svc.Create(CreateBookingInput{
		CheckIn:        "2025-07-01",
		CheckOut:       "2025-07-03",
		PrimaryGuestID: primary.ID,
		ServiceIDs:     []string{nightly.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.TotalAmount.StringFixed(2) != "240.00" {
		t.Fatalf("initial total = %s, want 240.00", booking.TotalAmount.StringFixed(2))
	}

	newOut := "2025-07-06"
	updated, err := svc.Update(booking.ID, UpdateBookingInput{CheckOut: &newOut})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TotalAmount.StringFixed(2) != "600.00" {
		t.Errorf("total after extending stay = %s, want 600.00", updated.TotalAmount.StringFixed(2))
	}
	// untouched fields survive
	if len(updated.Services) != 1 {
		t.Errorf("services should be untouched, got %d", len(updated.Services))
	}
	if updated.PrimaryGuestID != primary.ID {
		t.Errorf("primary guest changed unexpectedly")
	}
}

func TestUpdateBookingReplacesAssociations(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)

	primary := createGuest(t, db, "Anna", "Meier")
	extra := createGuest(t, db, "Bruno", "Zeller")
	kurtaxe := createService(t, db, "Kurtaxe", "3.50", models.ServiceTypePerPerson)

	booking, err := svc.Create(CreateBookingInput{
		CheckIn:            "2025-07-01",
		CheckOut:           "2025-07-03",
		PrimaryGuestID:     primary.ID,
		AdditionalGuestIDs: []string{extra.ID},
		ServiceIDs:         []string{kurtaxe.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(booking.ID, UpdateBookingInput{
		AdditionalGuestIDs: []string{},
		ServiceIDs:         []string{},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.AdditionalGuests) != 0 || len(updated.Services) != 0 {
		t.Errorf("empty slices should clear associations: %d guests, %d services",
			len(updated.AdditionalGuests), len(updated.Services))
	}
	if !updated.TotalAmount.IsZero() {
		t.Errorf("total = %s, want 0 after removing all services", updated.TotalAmount)
	}
}

// Unknown keys in a PATCH body must not reach the booking.
func TestUpdateBookingInputIgnoresUnknownKeys(t *testing.T) {
	body := []byte(`{"notes":"ok","totalAmount":"9999.00","isPaid":true,"id":"hijack"}`)
	var in UpdateBookingInput
	if err := json.Unmarshal(body, &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.Notes == nil || *in.Notes != "ok" {
		t.Errorf("notes should bind")
	}
	if in.CheckIn != nil || in.Status != nil || in.Currency != nil {
		t.Errorf("unexpected fields bound: %+v", in)
	}
}

func TestFindUpcoming(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	primary := createGuest(t, db, "Anna", "Meier")

	mk := func(offsetDays int) {
		t.Helper()
		day := time.Now().AddDate(0, 0, offsetDays)
		_, err := svc.Create(CreateBookingInput{
			CheckIn:        day.Format("2006-01-02"),
			CheckOut:       day.AddDate(0, 0, 2).Format("2006-01-02"),
			PrimaryGuestID: primary.ID,
		})
		if err != nil {
			t.Fatalf("create offset %d: %v", offsetDays, err)
		}
	}
	mk(10)
	mk(70) // beyond one month
	mk(-30)

	upcoming, err := svc.FindUpcoming()
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("upcoming = %d bookings, want 1", len(upcoming))
	}
	if upcoming[0].PrimaryGuest.ID != primary.ID {
		t.Errorf("primary guest not preloaded")
	}
}

func TestDashboardStats(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	primary := createGuest(t, db, "Anna", "Meier")

	completed := models.BookingStatusCompleted
	in10 := time.Now().AddDate(0, 0, 10)
	booking, err := svc.Create(CreateBookingInput{
		CheckIn:        in10.Format("2006-01-02"),
		CheckOut:       in10.AddDate(0, 0, 2).Format("2006-01-02"),
		PrimaryGuestID: primary.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(booking.ID, UpdateBookingInput{Status: &completed}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stats, err := svc.GetDashboardStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalBookings != 1 || stats.UpcomingBookings != 1 || stats.CompletedBookings != 1 {
		t.Errorf("stats = %+v, want 1/1/1", stats)
	}
}

func TestRemoveBookingClearsJoinRows(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)

	primary := createGuest(t, db, "Anna", "Meier")
	extra := createGuest(t, db, "Bruno", "Zeller")
	kurtaxe := createService(t, db, "Kurtaxe", "3.50", models.ServiceTypePerPerson)

	booking, err := svc.Create(CreateBookingInput{
		CheckIn:            "2025-07-01",
		CheckOut:           "2025-07-03",
		PrimaryGuestID:     primary.ID,
		AdditionalGuestIDs: []string{extra.ID},
		ServiceIDs:         []string{kurtaxe.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Remove(booking.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	var joins int64
	db.Table("booking_additional_guests").Count(&joins)
	if joins != 0 {
		t.Errorf("guest join rows left behind: %d", joins)
	}
	db.Table("booking_services").Count(&joins)
	if joins != 0 {
		t.Errorf("service join rows left behind: %d", joins)
	}

	_, err = svc.FindOne(booking.ID)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after remove", err)
	}
}
