// Package report renders supplier profiles as PDF documents.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
)

const (
	pageMargin  = 15.0
	lineHeight  = 7.0
	labelWidth  = 50.0
	logoWidth   = 30.0
	headerSpace = 25.0
)

// Options controls the optional parts of a profile document.
type Options struct {
	GeneratedAt time.Time
	LogoPath    string
	Filter      string
}

// WriteSupplierProfile renders profile to w as a single PDF document.
func WriteSupplierProfile(w io.Writer, profile *insights.SupplierProfile, opts Options) error {
	if profile == nil {
		return fmt.Errorf("nil supplier profile")
	}
	if opts.LogoPath != "" {
		if _, err := os.Stat(opts.LogoPath); err != nil {
			return fmt.Errorf("logo unavailable: %w", err)
		}
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		if opts.LogoPath != "" {
			pdf.ImageOptions(opts.LogoPath, pageMargin, 8, logoWidth, 0, false,
				gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.SetXY(pageMargin, 10)
		pdf.CellFormat(0, 5, "Generated "+opts.GeneratedAt.Format("02 Jan 2006 15:04"), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetY(headerSpace)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, tr("Supplier Profile: "+profile.Name), "", 1, "L", false, 0, "")
	if opts.Filter != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, tr(opts.Filter), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Supplier Information")
	for _, kv := range [][2]string{
		{"Name", profile.Name},
		{"Supplier ID", profile.SupplierID},
		{"ABN", profile.ABN},
		{"Country", profile.Country},
		{"Service Category", profile.ServiceCategory},
		{"Supplier Type", profile.SupplierType},
		{"Terms (Days)", strconv.Itoa(profile.TermsDays)},
		{"Contact", profile.Contact()},
	} {
		labelled(pdf, tr(kv[0]), tr(kv[1]))
	}

	section(pdf, "Invoice Statistics")
	labelled(pdf, "Invoices", insights.FormatCount(profile.InvoiceCount))
	labelled(pdf, "Total Amount", insights.FormatMoneyCents(profile.TotalAmount))
	labelled(pdf, "Average Amount", insights.FormatAverage(profile.AverageAmount))

	section(pdf, "Monthly Late Payments")
	rows := make([][]string, len(profile.MonthlyLate))
	for i, p := range profile.MonthlyLate {
		rows[i] = []string{p.Month, insights.FormatCount(p.Invoices), insights.FormatCount(p.PaidLate), insights.FormatPercent(p.LatePercent)}
	}
	table(pdf, []string{"Month", "Invoices", "Paid Late", "% Late"}, []float64{40, 40, 40, 40}, rows)

	section(pdf, "Risk Score Distribution")
	if len(profile.RiskDistribution) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, lineHeight, insights.NoRiskDataWarning, "", 1, "L", false, 0, "")
	} else {
		rows = make([][]string, len(profile.RiskDistribution))
		for i, rc := range profile.RiskDistribution {
			rows[i] = []string{rc.Score.Label(), insights.FormatCount(rc.Count)}
		}
		table(pdf, []string{"Risk Score", "Invoices"}, []float64{80, 40}, rows)
	}

	section(pdf, "Invoices")
	rows = make([][]string, len(profile.Invoices))
	for i, inv := range profile.Invoices {
		rows[i] = []string{
			tr(inv.ID),
			insights.FormatDate(inv.InvoiceDate),
			insights.FormatDate(inv.DueDate),
			insights.FormatMoneyCents(inv.Amount),
			tr(inv.Status),
		}
	}
	table(pdf, []string{"Invoice ID", "Invoice Date", "Due Date", "Amount", "Status"}, []float64{35, 32, 32, 40, 41}, rows)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render supplier profile: %w", err)
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(230, 236, 245)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func labelled(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, lineHeight, value, "", 1, "L", false, 0, "")
}

func table(pdf *gofpdf.Fpdf, header []string, widths []float64, rows [][]string) {
	pdf.SetFont("Arial", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		for i, cell := range row {
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(widths[i], lineHeight, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
