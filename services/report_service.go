package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"rustico-backend/apperr"
	"rustico-backend/models"
)

const dateDE = "02.01.2006"

type ReportService struct {
	DB       *gorm.DB
	Settings *SettingsService
}

func NewReportService(db *gorm.DB, settings *SettingsService) *ReportService {
	return &ReportService{DB: db, Settings: settings}
}

type serviceLine struct {
	Name        string
	Description string
	Amount      string
}

type documentData struct {
	Settings        AppSettings
	Guest           models.Guest
	AdditionalNames string
	Reference       string
	IssueDate       string
	CheckIn         string
	CheckOut        string
	Nights          int
	Lines           []serviceLine
	Total           string
	HasTotal        bool
}

type personRow struct {
	Name               string
	Role               string
	RegistrationNumber string
	Nationality        string
	BirthDate          string
	CheckIn            string
	CheckOut           string
	Amount             string
	amountValue        decimal.Decimal
	hasAmount          bool
}

type periodData struct {
	Settings     AppSettings
	Year         string
	Start        string
	End          string
	BookingCount int
	PersonCount  int
	TotalRevenue string
	Rows         []personRow
}

func formatCHF(amount decimal.Decimal) string {
	return "CHF " + amount.StringFixed(2)
}

// reportLineAmount computes the displayed line-item amount for a service.
// Per-person services multiply by guest count AND nights here, unlike the
// stored booking total which multiplies by guest count only. The two
// formulas are kept separate on purpose.
func reportLineAmount(svc models.Service, nights, guestCount int) (decimal.Decimal, string) {
	switch svc.Type {
	case models.ServiceTypeNightly:
		amount := svc.Price.Mul(decimal.NewFromInt(int64(nights)))
		return amount, fmt.Sprintf("%s (%d Nächte)", svc.Name, nights)
	case models.ServiceTypePerPerson:
		amount := svc.Price.
			Mul(decimal.NewFromInt(int64(guestCount))).
			Mul(decimal.NewFromInt(int64(nights)))
		return amount, fmt.Sprintf("%s (%d Personen × %d Nächte)", svc.Name, guestCount, nights)
	default:
		return svc.Price, svc.Name
	}
}

// loadBookingForReport fetches a booking with all relations and validates
// everything the documents need before any rendering starts.
func (s *ReportService) loadBookingForReport(id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("PrimaryGuest").
		Preload("AdditionalGuests").
		Preload("Services").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	if booking.PrimaryGuest.ID == "" {
		return nil, fmt.Errorf("%w: primary guest missing for booking %s", apperr.ErrNotFound, id)
	}
	if booking.CheckIn.IsZero() || booking.CheckOut.IsZero() {
		return nil, fmt.Errorf("%w: booking %s has no check-in or check-out date", apperr.ErrValidation, id)
	}
	return &booking, nil
}

func (s *ReportService) documentData(booking *models.Booking) (documentData, error) {
	settings, err := s.Settings.Get()
	if err != nil {
		return documentData{}, err
	}

	nights := Nights(booking.CheckIn, booking.CheckOut)
	guestCount := 1 + len(booking.AdditionalGuests)

	lines := make([]serviceLine, 0, len(booking.Services))
	total := decimal.Zero
	for _, svc := range booking.Services {
		amount, description := reportLineAmount(svc, nights, guestCount)
		total = total.Add(amount)
		lines = append(lines, serviceLine{
			Name:        svc.Name,
			Description: description,
			Amount:      formatCHF(amount),
		})
	}

	additionalNames := ""
	for i, g := range booking.AdditionalGuests {
		if i > 0 {
			additionalNames += ", "
		}
		additionalNames += g.FullName()
	}

	return documentData{
		Settings:        settings,
		Guest:           booking.PrimaryGuest,
		AdditionalNames: additionalNames,
		Reference:       booking.Reference(),
		IssueDate:       time.Now().Format(dateDE),
		CheckIn:         booking.CheckIn.Format(dateDE),
		CheckOut:        booking.CheckOut.Format(dateDE),
		Nights:          nights,
		Lines:           lines,
		Total:           formatCHF(total),
		HasTotal:        total.IsPositive(),
	}, nil
}

func (s *ReportService) BookingConfirmationPDF(ctx context.Context, bookingID string) ([]byte, error) {
	booking, err := s.loadBookingForReport(bookingID)
	if err != nil {
		return nil, err
	}
	data, err := s.documentData(booking)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return s.renderPDF(ctx, buf.String())
}

func (s *ReportService) InvoicePDF(ctx context.Context, bookingID string) ([]byte, error) {
	booking, err := s.loadBookingForReport(bookingID)
	if err != nil {
		return nil, err
	}
	data, err := s.documentData(booking)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return s.renderPDF(ctx, buf.String())
}

// periodBookings loads all bookings with check-in inside [start, end]. When
// the many-to-many preload yields no additional guests, an explicit join
// query recovers them; relation loading has been observed to come back
// empty here.
func (s *ReportService) periodBookings(start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Where("check_in BETWEEN ? AND ?", start, end).
		Preload("PrimaryGuest").
		Preload("AdditionalGuests").
		Preload("Services").
		Order("check_in ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		if len(bookings[i].AdditionalGuests) > 0 {
			continue
		}
		var extra []models.Guest
		err := s.DB.Model(&models.Guest{}).
			Joins("JOIN booking_additional_guests bag ON bag.guest_id = guests.id").
			Where("bag.booking_id = ?", bookings[i].ID).
			Find(&extra).Error
		if err != nil {
			return nil, err
		}
		bookings[i].AdditionalGuests = extra
	}
	return bookings, nil
}

func formatBirthDate(g models.Guest) string {
	if g.BirthDate == nil {
		return "-"
	}
	return time.Time(*g.BirthDate).Format(dateDE)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// collectPersonRows flattens bookings to one row per person. The primary
// guest carries the booking total; additional guests show a dash. Rows are
// sorted by person name.
func collectPersonRows(bookings []models.Booking) ([]personRow, decimal.Decimal) {
	rows := make([]personRow, 0, len(bookings))
	totalRevenue := decimal.Zero

	for _, booking := range bookings {
		checkIn := booking.CheckIn.Format(dateDE)
		checkOut := booking.CheckOut.Format(dateDE)
		totalRevenue = totalRevenue.Add(booking.TotalAmount)

		rows = append(rows, personRow{
			Name:               booking.PrimaryGuest.FullName(),
			Role:               "Hauptgast",
			RegistrationNumber: orDash(booking.PrimaryGuest.RegistrationNumber),
			Nationality:        orDash(booking.PrimaryGuest.Nationality),
			BirthDate:          formatBirthDate(booking.PrimaryGuest),
			CheckIn:            checkIn,
			CheckOut:           checkOut,
			Amount:             formatCHF(booking.TotalAmount),
			amountValue:        booking.TotalAmount,
			hasAmount:          true,
		})

		for _, guest := range booking.AdditionalGuests {
			rows = append(rows, personRow{
				Name:               guest.FullName(),
				Role:               "Zusatzgast",
				RegistrationNumber: orDash(guest.RegistrationNumber),
				Nationality:        orDash(guest.Nationality),
				BirthDate:          formatBirthDate(guest),
				CheckIn:            checkIn,
				CheckOut:           checkOut,
				Amount:             "-",
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, totalRevenue
}

// PeriodReport renders the period summary as a PDF ("pdf") or an XLSX
// workbook ("excel"). A range without bookings still yields a valid
// document.
func (s *ReportService) PeriodReport(ctx context.Context, start, end time.Time, format string) ([]byte, error) {
	bookings, err := s.periodBookings(start, end)
	if err != nil {
		return nil, err
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return nil, err
	}

	if len(bookings) == 0 && format != "excel" {
		var buf bytes.Buffer
		err := emptyPeriodTmpl.Execute(&buf, periodData{
			Settings: settings,
			Start:    start.Format(dateDE),
			End:      end.Format(dateDE),
		})
		if err != nil {
			return nil, err
		}
		return s.renderPDF(ctx, buf.String())
	}

	rows, totalRevenue := collectPersonRows(bookings)

	if format == "excel" {
		return excelReport(bookings, rows, totalRevenue)
	}

	data := periodData{
		Settings:     settings,
		Year:         start.Format("2006"),
		Start:        start.Format(dateDE),
		End:          end.Format(dateDE),
		BookingCount: len(bookings),
		PersonCount:  len(rows),
		TotalRevenue: formatCHF(totalRevenue),
		Rows:         rows,
	}
	var buf bytes.Buffer
	if err := periodTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return s.renderPDF(ctx, buf.String())
}

func excelReport(bookings []models.Booking, rows []personRow, totalRevenue decimal.Decimal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Buchungen"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	widths := []float64{25, 20, 15, 15, 15, 15, 15}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, err
		}
	}

	header := []interface{}{
		"Gast (Rolle)", "Meldescheinnummer", "Nationalität", "Geburtsdatum",
		"Check-in", "Check-out", "Betrag (CHF)",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return nil, err
	}

	rowIdx := 2
	for _, row := range rows {
		var amount interface{} = row.Amount
		if row.hasAmount {
			amount, _ = row.amountValue.Float64()
		}
		cells := []interface{}{
			fmt.Sprintf("%s (%s)", row.Name, row.Role),
			row.RegistrationNumber, row.Nationality, row.BirthDate,
			row.CheckIn, row.CheckOut, amount,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIdx), &cells); err != nil {
			return nil, err
		}
		rowIdx++
	}

	// blank separator, then the summary block
	rowIdx++
	summary := []interface{}{"ZUSAMMENFASSUNG"}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIdx), &summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("G%d", rowIdx), headerStyle); err != nil {
		return nil, err
	}
	rowIdx++

	counts := []interface{}{fmt.Sprintf("Anzahl Buchungen: %d", len(bookings))}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIdx), &counts); err != nil {
		return nil, err
	}
	rowIdx++
	persons := []interface{}{fmt.Sprintf("Anzahl Personen: %d", len(rows))}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIdx), &persons); err != nil {
		return nil, err
	}
	rowIdx++

	revenue, _ := totalRevenue.Float64()
	totalRow := []interface{}{"GESAMTEINNAHMEN", "", "", "", "", "", revenue}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIdx), &totalRow); err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F0F0F0"}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("G%d", rowIdx), totalStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderPDF prints the HTML through a headless Chrome tab: A4, 20mm
// margins, backgrounds on. The deferred cancels tear the browser process
// down on every exit path, including render errors and timeouts.
func (s *ReportService) renderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
	defer cancelTimeout()

	const marginInches = 20.0 / 25.4 // Chrome takes margins in inches

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(8.27).   // A4
				WithPaperHeight(11.69). //
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		log.Printf("pdf rendering failed: %v", err)
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	return pdf, nil
}
