package document

// RGB - цвет в диапазоне 0..255.
type RGB struct{ R, G, B int }

var (
	colorDarkBlue = RGB{0, 0, 139}
	colorHeader   = RGB{0, 64, 128} // #004080
	colorBlack    = RGB{0, 0, 0}
)

// TextStyle - параметры шрифта и отступов для одного вида текста (в пунктах).
type TextStyle struct {
	Font        string
	FontStyle   string // "", "B", "I"
	Size        float64
	Leading     float64
	SpaceBefore float64
	SpaceAfter  float64
	Color       RGB
	Align       string // "L", "C"
}

// ListStyle - оформление маркированного списка.
type ListStyle struct {
	LeftIndent     float64
	BulletFontSize float64
	BulletColor    RGB
	SpaceBefore    float64
	SpaceAfter     float64
}

// Style - полный набор констант оформления документа.
type Style struct {
	PageSize string
	Margin   float64

	Title  TextStyle
	Header TextStyle
	Body   TextStyle
	List   ListStyle

	TitleSpacer       float64
	BlockSpacer       float64
	PlaceholderSpacer float64
}

// DefaultStyle возвращает оформление плана поездки: Letter, поля 50pt.
func DefaultStyle() Style {
	return Style{
		PageSize: "Letter",
		Margin:   50,
		Title: TextStyle{
			Font: "Helvetica", FontStyle: "B", Size: 28, Leading: 34,
			SpaceAfter: 30, Color: colorDarkBlue, Align: "C",
		},
		Header: TextStyle{
			Font: "Helvetica", FontStyle: "B", Size: 18, Leading: 22,
			SpaceBefore: 24, SpaceAfter: 14, Color: colorHeader, Align: "L",
		},
		Body: TextStyle{
			Font: "Helvetica", Size: 12, Leading: 18,
			SpaceAfter: 8, Color: colorBlack, Align: "L",
		},
		List: ListStyle{
			LeftIndent:     20,
			BulletFontSize: 8,
			BulletColor:    colorDarkBlue,
			SpaceBefore:    4,
			SpaceAfter:     8,
		},
		TitleSpacer:       16,
		BlockSpacer:       6,
		PlaceholderSpacer: 8,
	}
}
