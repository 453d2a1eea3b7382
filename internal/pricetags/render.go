package pricetags

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// MaxTitleRunes is how much of an item name fits on one tag line
	MaxTitleRunes = 20

	qrPadding   = 5.0
	qrPixels    = 256
	textIndent  = 10.0
	lineSpacing = 20.0
)

// Renderer draws price tags onto PDF pages
type Renderer struct {
	Layout Layout
}

// NewRenderer returns a Renderer for US Letter pages
func NewRenderer() *Renderer {
	return &Renderer{Layout: Letter()}
}

// RenderFile writes the tags for entries to path
func (r *Renderer) RenderFile(entries []Entry, path string) error {
	pdf, err := r.build(entries)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Info("Price tags written", "path", path, "tags", len(entries), "pages", r.Layout.Pages(len(entries)))
	return nil
}

// Render writes the tags for entries as a PDF document to w
func (r *Renderer) Render(entries []Entry, w io.Writer) error {
	pdf, err := r.build(entries)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func (r *Renderer) build(entries []Entry) (*fpdf.Fpdf, error) {
	l := r.Layout
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetLineWidth(1)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	page := -1
	for i, p := range l.Place(len(entries)) {
		if p.Page != page {
			pdf.AddPage()
			page = p.Page
		}
		if err := r.drawTag(pdf, tr, entries[i], p, i); err != nil {
			return nil, err
		}
	}

	if len(entries) == 0 {
		pdf.AddPage()
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render price tags: %w", err)
	}
	return pdf, nil
}

func (r *Renderer) drawTag(pdf *fpdf.Fpdf, tr func(string) string, entry Entry, p Placement, index int) error {
	l := r.Layout
	pdf.Rect(p.X, p.Y, l.TagWidth, l.TagHeight, "D")

	if entry.URL != "" {
		png, err := QRCode(entry.URL)
		if err != nil {
			return err
		}
		size := l.TagHeight - 50
		name := fmt.Sprintf("qr-%d", index)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, p.X+l.TagWidth-size-qrPadding, p.Y+(l.TagHeight-size)/2, size, size, false, opts, 0, "")
	}

	baseline := p.Y + l.TagHeight/2 - 10
	pdf.SetFont("Helvetica", "I", 12)
	pdf.Text(p.X+textIndent, baseline, tr(Truncate(entry.Title, MaxTitleRunes)))

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(p.X+textIndent, baseline+lineSpacing, tr(FormatPrice(entry.Price)))
	return nil
}

// QRCode encodes url as a PNG with no quiet zone
func QRCode(url string) ([]byte, error) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code for %s: %w", url, err)
	}
	q.DisableBorder = true
	png, err := q.PNG(qrPixels)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

var printer = message.NewPrinter(language.English)

// FormatPrice renders a dollar amount with thousands separators, e.g. $1,234.50
func FormatPrice(price decimal.Decimal) string {
	return printer.Sprintf("$%.2f", price.Round(2).InexactFloat64())
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
