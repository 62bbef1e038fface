package printing

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/tidings-dev/tidings/internal/models"
)

func title(announcementType string) string {
	switch announcementType {
	case models.TypeDeath:
		return "In Loving Memory"
	case models.TypeBirth:
		return "Birth Announcement"
	case models.TypeWedding:
		return "Wedding Announcement"
	default:
		return "Announcement"
	}
}

// RenderAnnouncement lays out a printable A4 notice. cityName may be empty
// when the announcement has no city or the city is unknown.
func RenderAnnouncement(a *models.Announcement, cityName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle(title(a.Type), true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, title(a.Type), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if a.PartnerName != "" {
		name += " & " + a.PartnerName
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(name), "", 1, "C", false, 0, "")

	dates := dateLine(a)
	if dates != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(0, 8, tr(dates), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(6)

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(a.Obituary), "", "L", false)
	pdf.Ln(4)

	details := [][2]string{
		{"City", cityName},
		{"Place of birth", a.PlaceOfBirth},
		{"Place of death", a.PlaceOfDeath},
		{"Service", joinNonEmpty(", ", a.ServiceDate, a.ServiceTime, a.ServicePlace)},
		{"Funeral", joinNonEmpty(", ", a.FuneralTime, a.FuneralPlace)},
	}
	for _, d := range details {
		if d[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, d[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr(d[1]), "", 1, "L", false, 0, "")
	}

	if a.ClosestFamilyCircle != nil && *a.ClosestFamilyCircle {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 7, "The service is held in the closest family circle.", "", 1, "L", false, 0, "")
	}

	if len(a.Relatives) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Family", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, r := range a.Relatives {
			line := r.Name
			if r.PartnerName != "" {
				line += " & " + r.PartnerName
			}
			if r.Children == "yes" {
				line += " with children"
			}
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
	}

	if a.SpecialThanks != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, tr(a.SpecialThanks), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render announcement: %w", err)
	}
	return buf.Bytes(), nil
}

func dateLine(a *models.Announcement) string {
	switch {
	case a.DateOfBirth != "" && a.DateOfDeath != "":
		return a.DateOfBirth + " - " + a.DateOfDeath
	case a.DateOfBirth != "":
		return "Born " + a.DateOfBirth
	case a.DateOfDeath != "":
		return "Died " + a.DateOfDeath
	default:
		return ""
	}
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
