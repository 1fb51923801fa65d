// Package certificate renders membership certificates and formats
// membership numbers.
package certificate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	orgName   = "Shoulder & Elbow Society of India"
	orgShort  = "(SESI)"
	orgFooter = "Shoulder & Elbow Society of India | sesi.co.in | info@sesi.co.in"

	// DateLayout is how the approval date is printed.
	DateLayout = "January 02, 2006"

	inch = 25.4
)

var ErrIncomplete = errors.New("certificate needs a member name and membership number")

type Data struct {
	FullName         string
	Qualification    string
	Hospital         string
	MembershipType   string
	MembershipNumber string
	ApprovedAt       time.Time
}

type rgb struct{ r, g, b int }

var (
	teal   = rgb{13, 148, 136}
	orange = rgb{249, 115, 22}
	ink    = rgb{31, 41, 55}
	body   = rgb{55, 65, 81}
	muted  = rgb{107, 114, 128}
	rule   = rgb{209, 213, 219}
	faint  = rgb{156, 163, 175}
)

// Render writes a landscape A4 certificate PDF to w.
func Render(w io.Writer, d Data) error {
	if d.FullName == "" || d.MembershipNumber == "" {
		return ErrIncomplete
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("SESI Membership Certificate "+d.MembershipNumber, true)
	pdf.SetAuthor(orgName, true)
	pdf.SetCreationDate(d.ApprovedAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, height := pdf.GetPageSize()

	border := func(c rgb, lw, inset float64) {
		pdf.SetDrawColor(c.r, c.g, c.b)
		pdf.SetLineWidth(lw)
		pdf.Rect(inset, inset, width-2*inset, height-2*inset, "D")
	}
	centred := func(y float64, style string, size float64, c rgb, text string) {
		pdf.SetFont("Helvetica", style, size)
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.SetXY(0, y)
		pdf.CellFormat(width, size*0.5, tr(text), "", 0, "C", false, 0, "")
	}
	at := func(x, y float64, style string, size float64, c rgb, text string) {
		pdf.SetFont("Helvetica", style, size)
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.SetXY(x-40, y)
		pdf.CellFormat(80, size*0.5, tr(text), "", 0, "C", false, 0, "")
	}

	border(teal, 2.8, 0.5*inch)
	border(orange, 1.0, 0.6*inch)

	centred(1.3*inch, "B", 36, teal, "CERTIFICATE OF MEMBERSHIP")
	centred(1.85*inch, "B", 24, ink, orgName)
	centred(2.25*inch, "", 14, ink, orgShort)

	pdf.SetDrawColor(rule.r, rule.g, rule.b)
	pdf.SetLineWidth(0.35)
	pdf.Line(2*inch, 2.7*inch, width-2*inch, 2.7*inch)

	centred(3.1*inch, "", 16, body, "This is to certify that")
	centred(3.6*inch, "B", 28, orange, d.FullName)

	next := 4.9 * inch
	if d.Qualification != "" {
		centred(4.2*inch, "", 14, body, d.Qualification)
	}
	if d.Hospital != "" {
		centred(4.5*inch, "", 14, body, d.Hospital)
		next = 5.1 * inch
	}
	centred(next, "", 16, body, fmt.Sprintf("has been accepted as a %s", d.MembershipType))
	centred(next+0.55*inch, "B", 18, teal, "Membership Number: "+d.MembershipNumber)
	centred(next+1.0*inch, "", 12, muted, "Date of Approval: "+d.ApprovedAt.Format(DateLayout))

	footerY := height - 1.8*inch
	pdf.SetDrawColor(faint.r, faint.g, faint.b)
	pdf.SetLineWidth(0.35)
	pdf.Line(1.5*inch, footerY, 3.5*inch, footerY)
	pdf.Line(width-3.5*inch, footerY, width-1.5*inch, footerY)
	at(2.5*inch, footerY+0.15*inch, "", 10, body, "President")
	at(2.5*inch, footerY+0.4*inch, "B", 11, body, "SESI")
	at(width-2.5*inch, footerY+0.15*inch, "", 10, body, "Secretary")
	at(width-2.5*inch, footerY+0.4*inch, "B", 11, body, "SESI")
	centred(footerY+0.15*inch, "I", 9, faint, "Official Seal")
	centred(height-0.95*inch, "", 9, muted, orgFooter)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render certificate: %w", err)
	}
	return pdf.Output(w)
}
