package services

import "html/template"

// The report documents are fixed German-language layouts. They are parsed
// once at package init; data comes from the small view structs in
// report_service.go.

var (
	confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationHTML))
	invoiceTmpl      = template.Must(template.New("invoice").Parse(invoiceHTML))
	periodTmpl       = template.Must(template.New("period").Parse(periodHTML))
	emptyPeriodTmpl  = template.Must(template.New("emptyPeriod").Parse(emptyPeriodHTML))
)

const confirmationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Buchungsbestätigung - {{.Guest.FirstName}} {{.Guest.LastName}}</title>
  <style>
    body { font-family: 'Roboto', Arial, sans-serif; margin: 0; padding: 40px; background: linear-gradient(135deg, #e8f5e8 0%, #a8d8a8 100%); color: #2c3e50; }
    .container { max-width: 800px; margin: 0 auto; background: white; border-radius: 15px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #28a745 0%, #20c997 100%); color: white; padding: 40px; text-align: center; }
    .header h1 { margin: 0 0 10px 0; font-size: 2.5em; font-weight: 300; }
    .header h2 { margin: 0 0 20px 0; font-size: 1.8em; font-weight: 400; }
    .content { padding: 40px; }
    .confirmation-badge { background: linear-gradient(135deg, #28a745 0%, #20c997 100%); color: white; padding: 20px; border-radius: 50px; text-align: center; margin-bottom: 30px; font-size: 1.3em; }
    .booking-info { background: #e8f5e8; padding: 25px; border-radius: 10px; margin-bottom: 30px; border-left: 5px solid #28a745; }
    .guest-info { background: #f8f9fa; padding: 25px; border-radius: 10px; margin-bottom: 30px; border-left: 5px solid #667eea; }
    .services-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
    .services-table th { background: linear-gradient(135deg, #28a745 0%, #20c997 100%); color: white; padding: 15px; text-align: left; }
    .services-table td { padding: 15px; border-bottom: 1px solid #eee; }
    .services-table tr:nth-child(even) { background-color: #f8f9fa; }
    .total-section { background: linear-gradient(135deg, #28a745 0%, #20c997 100%); color: white; padding: 25px; border-radius: 10px; text-align: right; margin: 30px 0; font-size: 1.5em; }
    .footer { background: #2c3e50; color: white; padding: 30px; text-align: center; }
    .checkin-info { background: rgba(255,255,255,0.1); padding: 20px; border-radius: 8px; margin-top: 20px; }
    .amount { text-align: right; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      {{if .Settings.LogoURL}}<img src="{{.Settings.LogoURL}}" alt="Logo" style="max-width: 200px; max-height: 100px; margin-bottom: 20px;">{{end}}
      <h1>{{.Settings.CompanyName}}</h1>
      <h2>Buchungsbestätigung</h2>
      <p>{{.Settings.Address}}</p>
    </div>
    <div class="content">
      <div class="confirmation-badge">Deine Buchung ist bestätigt!</div>
      <div class="booking-info">
        <p><strong>Buchungsnummer:</strong> {{.Reference}}</p>
        <p><strong>Bestätigt am:</strong> {{.IssueDate}}</p>
        <p><strong>Aufenthalt:</strong> {{.CheckIn}} - {{.CheckOut}} ({{.Nights}} Nächte)</p>
      </div>
      <div class="guest-info">
        <h3>Liebe/r {{.Guest.FirstName}}</h3>
        <p>Wir freuen uns riesig auf deinen Besuch in unserem gemütlichen Rustico!</p>
        <p><strong>{{.Guest.FirstName}} {{.Guest.LastName}}</strong></p>
        {{if .Guest.Address}}<p>{{.Guest.Address}}</p>{{end}}
        {{if .Guest.City}}<p>{{.Guest.PostalCode}} {{.Guest.City}}</p>{{end}}
        {{if .Guest.Country}}<p>{{.Guest.Country}}</p>{{end}}
        {{if .AdditionalNames}}<p><strong>Begleitende Gäste:</strong> {{.AdditionalNames}}</p>{{end}}
      </div>
      <table class="services-table">
        <thead>
          <tr><th>Leistung</th><th>Beschreibung</th><th>Betrag</th></tr>
        </thead>
        <tbody>
          {{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Description}}</td><td class="amount">{{.Amount}}</td></tr>
          {{else}}<tr><td colspan="3">Keine zusätzlichen Leistungen gebucht</td></tr>{{end}}
        </tbody>
      </table>
      {{if .HasTotal}}<div class="total-section"><p>Gesamtbetrag: {{.Total}}</p></div>{{end}}
    </div>
    <div class="footer">
      <p>Wir können es kaum erwarten, dich begrüßen zu dürfen!</p>
      <div class="checkin-info">
        <p><strong>Check-in:</strong> Ab 15:00 Uhr am {{.CheckIn}}</p>
        <p><strong>Check-out:</strong> Bis 11:00 Uhr am {{.CheckOut}}</p>
        <p><strong>Kontakt:</strong> {{.Settings.Phone}}</p>
        <p><strong>E-Mail:</strong> {{.Settings.Email}}</p>
      </div>
    </div>
  </div>
</body>
</html>`

const invoiceHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Rechnung - {{.Guest.FirstName}} {{.Guest.LastName}}</title>
  <style>
    body { font-family: 'Roboto', Arial, sans-serif; margin: 0; padding: 40px; background: linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%); color: #2c3e50; }
    .container { max-width: 800px; margin: 0 auto; background: white; border-radius: 15px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 40px; text-align: center; }
    .header h1 { margin: 0 0 10px 0; font-size: 2.5em; font-weight: 300; }
    .header h2 { margin: 0 0 20px 0; font-size: 1.8em; font-weight: 400; }
    .content { padding: 40px; }
    .invoice-info { background: #f8f9fa; padding: 25px; border-radius: 10px; margin-bottom: 30px; border-left: 5px solid #667eea; }
    .guest-info { background: #e8f5e8; padding: 25px; border-radius: 10px; margin-bottom: 30px; border-left: 5px solid #28a745; }
    .services-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
    .services-table th { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 15px; text-align: left; }
    .services-table td { padding: 15px; border-bottom: 1px solid #eee; }
    .services-table tr:nth-child(even) { background-color: #f8f9fa; }
    .total-section { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 25px; border-radius: 10px; text-align: right; margin: 30px 0; font-size: 1.5em; }
    .footer { background: #2c3e50; color: white; padding: 30px; text-align: center; }
    .payment-info { background: rgba(255,255,255,0.1); padding: 20px; border-radius: 8px; margin-top: 20px; }
    .amount { text-align: right; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      {{if .Settings.LogoURL}}<img src="{{.Settings.LogoURL}}" alt="Logo" style="max-width: 200px; max-height: 100px; margin-bottom: 20px;">{{end}}
      <h1>{{.Settings.CompanyName}}</h1>
      <h2>Rechnung</h2>
      <p>{{.Settings.Address}}</p>
    </div>
    <div class="content">
      <div class="invoice-info">
        <p><strong>Rechnungsnummer:</strong> {{.Reference}}</p>
        <p><strong>Datum:</strong> {{.IssueDate}}</p>
        <p><strong>Aufenthalt:</strong> {{.CheckIn}} - {{.CheckOut}} ({{.Nights}} Nächte)</p>
      </div>
      <div class="guest-info">
        <h3>Liebe/r {{.Guest.FirstName}}</h3>
        <p><strong>{{.Guest.FirstName}} {{.Guest.LastName}}</strong></p>
        {{if .Guest.Address}}<p>{{.Guest.Address}}</p>{{end}}
        {{if .Guest.City}}<p>{{.Guest.PostalCode}} {{.Guest.City}}</p>{{end}}
        {{if .Guest.Country}}<p>{{.Guest.Country}}</p>{{end}}
        {{if .AdditionalNames}}<p><strong>Begleitende Gäste:</strong> {{.AdditionalNames}}</p>{{end}}
      </div>
      <table class="services-table">
        <thead>
          <tr><th>Leistung</th><th>Beschreibung</th><th>Betrag</th></tr>
        </thead>
        <tbody>
          {{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Description}}</td><td class="amount">{{.Amount}}</td></tr>
          {{else}}<tr><td colspan="3">Keine Leistungen</td></tr>{{end}}
        </tbody>
      </table>
      <div class="total-section"><p>Gesamtbetrag: {{.Total}}</p></div>
    </div>
    <div class="footer">
      <p>Vielen Dank für deinen wundervollen Aufenthalt in unserem Rustico!</p>
      <div class="payment-info">
        <p>Bitte überweise den Betrag auf folgendes Konto:</p>
        <p><strong>IBAN:</strong> {{.Settings.IBAN}}</p>
        <p><strong>Verwendungszweck:</strong> {{.Reference}}</p>
      </div>
    </div>
  </div>
</body>
</html>`

const periodHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Jahresreport {{.Year}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; }
    .header { text-align: center; margin-bottom: 30px; }
    .summary { margin-bottom: 30px; }
    .bookings-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
    .bookings-table th, .bookings-table td { border: 1px solid #ddd; padding: 8px; text-align: left; }
    .bookings-table th { background-color: #f2f2f2; }
    .total { font-weight: bold; font-size: 18px; text-align: right; }
    .amount { text-align: right; }
  </style>
</head>
<body>
  <div class="header">
    {{if .Settings.LogoURL}}<img src="{{.Settings.LogoURL}}" alt="Logo" style="max-width: 200px; max-height: 100px; margin-bottom: 20px;">{{end}}
    <h1>{{.Settings.CompanyName}}</h1>
    <h2>Jahresreport {{.Year}}</h2>
    <p>{{.Settings.Address}}</p>
  </div>
  <div class="summary">
    <p><strong>Zeitraum:</strong> {{.Start}} - {{.End}}</p>
    <p><strong>Anzahl Buchungen:</strong> {{.BookingCount}}</p>
    <p><strong>Anzahl Personen:</strong> {{.PersonCount}}</p>
    <p><strong>Gesamteinnahmen:</strong> {{.TotalRevenue}}</p>
  </div>
  <table class="bookings-table">
    <thead>
      <tr>
        <th>Gast (Rolle)</th>
        <th>Meldescheinnummer</th>
        <th>Nationalität</th>
        <th>Geburtsdatum</th>
        <th>Check-in</th>
        <th>Check-out</th>
        <th>Betrag</th>
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}<tr>
        <td>{{.Name}} ({{.Role}})</td>
        <td>{{.RegistrationNumber}}</td>
        <td>{{.Nationality}}</td>
        <td>{{.BirthDate}}</td>
        <td>{{.CheckIn}}</td>
        <td>{{.CheckOut}}</td>
        <td class="amount">{{.Amount}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div class="total"><p>Gesamteinnahmen: {{.TotalRevenue}}</p></div>
</body>
</html>`

const emptyPeriodHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Leerer Report</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; }
    .header { text-align: center; margin-bottom: 30px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>{{.Settings.CompanyName}}</h1>
    <h2>Zeitraum-Report</h2>
    <p>Zeitraum: {{.Start}} - {{.End}}</p>
    <p>Keine Buchungen im gewählten Zeitraum gefunden.</p>
  </div>
</body>
</html>`
