// Package printer renders the warehouse paper artifacts: QR label
// sheets for taped-on device tags and the 01-VT goods voucher.
package printer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

const fontFamily = "LabelFont"

// LabelConfig holds the sheet layout for label printing.
type LabelConfig struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// DefaultLabelConfig matches the pre-cut A4 label paper the warehouse
// stocks (3x8 grid).
func DefaultLabelConfig() LabelConfig {
	return LabelConfig{Cols: 3, Rows: 8, MarginTop: 10, MarginLeft: 7, GapX: 2.5, GapY: 0}
}

// LabelItem is one printable label: the device name as caption and the
// full QR payload block.
type LabelItem struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

func (c *LabelConfig) normalize() {
	if c.Cols <= 0 || c.Rows <= 0 {
		*c = DefaultLabelConfig()
	}
}

// setupFont registers the configured TTF for Vietnamese text and
// returns the family name. Without a font file the PDF falls back to
// the built-in Arial, which drops diacritics.
func setupFont(pdf *gofpdf.Fpdf, fontPath string) string {
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err == nil {
			pdf.AddUTF8Font(fontFamily, "", fontPath)
			pdf.AddUTF8Font(fontFamily, "B", fontPath)
			return fontFamily
		}
	}
	return "Arial"
}

// GenerateLabelsPDF renders one QR label per item onto A4 sheets.
func GenerateLabelsPDF(cfg LabelConfig, items []LabelItem, fontPath string) ([]byte, error) {
	cfg.normalize()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	family := setupFont(pdf, fontPath)
	pdf.SetFont(family, "", 8)

	pageWidth, pageHeight := 210.0, 297.0
	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY
	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)
	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows

	for i, item := range items {
		if item.Payload == "" {
			continue
		}
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(item.Payload, qrcode.Low, 256)
		if err != nil {
			return nil, fmt.Errorf("encode label %d: %w", i+1, err)
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))

		// QR centered, 70% of label height, caption strip below.
		qrSize := labelH * 0.7
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}
		qrX := x + (labelW-qrSize)/2
		qrY := y + (labelH-qrSize)/2 - 2
		pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		pdf.SetXY(x, y+labelH-6)
		pdf.SetFontSize(7)
		pdf.CellFormat(labelW, 5, item.Title, "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
