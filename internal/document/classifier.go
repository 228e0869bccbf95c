package document

import "strings"

// BlockKind - способ отображения блока.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
)

// bulletMarkers - допустимые маркеры пунктов списка (с обязательным пробелом).
var bulletMarkers = []string{"* ", "- "}

// Classify возвращает BlockList, только если КАЖДАЯ строка начинается с маркера.
// Одна строка без маркера делает весь блок абзацем.
func Classify(lines []string) BlockKind {
	if len(lines) == 0 {
		return BlockParagraph
	}
	for _, line := range lines {
		if !hasBulletMarker(line) {
			return BlockParagraph
		}
	}
	return BlockList
}

func hasBulletMarker(line string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// stripBulletMarker убирает маркер и окружающие пробелы.
func stripBulletMarker(line string) string {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):])
		}
	}
	return line
}
