package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"
)

// documentDate фиксирована: одинаковый план дает побайтно одинаковый PDF.
var documentDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const bulletRadiusRatio = 0.25 // радиус кружка относительно размера шрифта маркера

// RenderPDF сериализует документ в PDF. Разбиение на страницы определяется
// объемом текста (автоматический перенос страниц).
func RenderPDF(doc Document, style Style) ([]byte, error) {
	pdf := fpdf.New("P", "pt", style.PageSize, "")
	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	pdf.SetAutoPageBreak(true, style.Margin)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)

	// Базовые шрифты PDF работают в cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(cp1252Safe(doc.Title)), false)
	pdf.SetCreator("TripTacticx", false)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, style: style, tr: tr}
	w.title(doc.Title)
	for _, section := range doc.Sections {
		w.section(section)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("fpdf layout error: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf output error: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	style Style
	tr    func(string) string
}

func (w *pdfWriter) title(text string) {
	w.text(w.style.Title, text, w.style.Margin)
	w.pdf.Ln(w.style.Title.SpaceAfter)
	w.pdf.Ln(w.style.TitleSpacer)
}

func (w *pdfWriter) section(section RenderedSection) {
	header := w.style.Header
	// Отступ перед заголовком не нужен в самом верху страницы
	if w.pdf.GetY() > w.style.Margin {
		w.pdf.Ln(header.SpaceBefore)
	}
	w.text(header, section.Title, w.style.Margin)
	w.pdf.Ln(header.SpaceAfter)

	if section.IsEmpty {
		w.text(w.style.Body, EmptySectionText, w.style.Margin)
		w.pdf.Ln(w.style.Body.SpaceAfter)
		w.pdf.Ln(w.style.PlaceholderSpacer)
		return
	}

	for _, block := range section.Blocks {
		switch block.Kind {
		case BlockList:
			w.list(block.Items())
		default:
			w.text(w.style.Body, block.Text(), w.style.Margin)
			w.pdf.Ln(w.style.Body.SpaceAfter)
		}
		w.pdf.Ln(w.style.BlockSpacer)
	}
}

func (w *pdfWriter) list(items []string) {
	list := w.style.List
	body := w.style.Body
	_, pageHeight := w.pdf.GetPageSize()
	textX := w.style.Margin + list.LeftIndent

	w.pdf.Ln(list.SpaceBefore)
	for _, item := range items {
		// Маркер и первая строка пункта должны оказаться на одной странице
		if w.pdf.GetY()+body.Leading > pageHeight-w.style.Margin {
			w.pdf.AddPage()
		}
		w.bullet(w.style.Margin+list.LeftIndent/2, w.pdf.GetY()+body.Leading/2)
		w.text(body, item, textX)
		w.pdf.Ln(body.SpaceAfter)
	}
	w.pdf.Ln(list.SpaceAfter)
}

func (w *pdfWriter) bullet(x, y float64) {
	c := w.style.List.BulletColor
	w.pdf.SetFillColor(c.R, c.G, c.B)
	w.pdf.Circle(x, y, w.style.List.BulletFontSize*bulletRadiusRatio, "F")
}

// text выводит многострочный текст от позиции x до правого поля.
func (w *pdfWriter) text(style TextStyle, text string, x float64) {
	w.pdf.SetFont(style.Font, style.FontStyle, style.Size)
	w.pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
	w.pdf.SetX(x)
	w.pdf.MultiCell(0, style.Leading, w.tr(cp1252Safe(text)), "", style.Align, false)
}

var currencyReplacer = strings.NewReplacer("\u20b9 ", "Rs ", "\u20b9", "Rs ")

// cp1252Safe заменяет знак рупии на "Rs" и убирает эмодзи и прочие символы
// вне cp1252. Транслятор fpdf выводит такие руны точкой.
func cp1252Safe(text string) string {
	text = currencyReplacer.Replace(text)
	text = strings.Map(func(r rune) rune {
		switch {
		case r >= 0x1F000, r >= 0x2600 && r <= 0x27BF:
			return -1
		case r == 0xFE0F || r == 0x200D:
			return -1
		case unicode.Is(unicode.So, r) && r > 0xFF && r != 0x2122:
			return -1
		}
		return r
	}, text)
	return strings.TrimRightFunc(text, unicode.IsSpace)
}
