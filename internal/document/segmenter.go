package document

import "strings"

const (
	blockSeparator = "\n\n"
	lineSeparator  = "\n"

	// LineBreak - маркер переноса строки внутри абзаца.
	LineBreak = "\n"
)

// Block - фрагмент текста раздела между пустыми строками.
type Block struct {
	Lines []string
	Kind  BlockKind
}

// Items возвращает пункты списка без маркеров. Для абзаца - nil.
func (b Block) Items() []string {
	if b.Kind != BlockList {
		return nil
	}
	items := make([]string, 0, len(b.Lines))
	for _, line := range b.Lines {
		items = append(items, stripBulletMarker(line))
	}
	return items
}

// Text склеивает строки абзаца через LineBreak.
func (b Block) Text() string {
	return strings.Join(b.Lines, LineBreak)
}

// Segment разбивает текст раздела на блоки в исходном порядке.
func Segment(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []Block
	for _, chunk := range strings.Split(text, blockSeparator) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		lines := splitLines(chunk)
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, Block{Lines: lines, Kind: Classify(lines)})
	}
	return blocks
}

func splitLines(chunk string) []string {
	raw := strings.Split(chunk, lineSeparator)
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
