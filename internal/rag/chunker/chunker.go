package chunker

import (
	"strings"

	"github.com/docuchat/api/internal/domain/docmodel"
)

//splitter

// Normalize collapses every run of whitespace to a single space and trims
// the ends. Chunk boundaries are defined over this normalized form only,
// so the same input always produces the same chunks.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Split slides a fixed window of size chars over the normalized text with
// a step of size-overlap. Windows that trim down to nothing are skipped;
// Index counts emitted chunks, not window positions. The final partial
// window is emitted once and iteration stops - no duplicate tails.
//
// Empty input yields an empty result, not an error. Callers are expected
// to have validated size/overlap (config.Validate); a non-positive step is
// refused here as well so a bad caller cannot loop forever.
func Split(text string, source string, size int, overlap int) []docmodel.Chunk {
	step := size - overlap
	if size < 1 || step < 1 {
		return nil
	}

	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	var chunks []docmodel.Chunk
	index := 0
	for start := 0; ; start += step {
		end := start + size
		last := end >= len(normalized)
		if last {
			end = len(normalized)
		}

		window := strings.TrimSpace(normalized[start:end])
		if window != "" {
			chunks = append(chunks, docmodel.Chunk{
				Text:   window,
				Source: source,
				Index:  index,
			})
			index++
		}

		if last {
			return chunks
		}
	}
}
