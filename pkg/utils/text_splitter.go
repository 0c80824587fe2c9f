package utils

// SplitText cuts a document into rune-based chunks of roughly chunkSize
// characters, with overlap runes repeated across adjacent chunks so
// sentences straddling a boundary survive in at least one chunk. Korean
// text is multi-byte, so slicing happens on runes, not bytes.
func SplitText(text string, chunkSize, overlap int) []string {
	runes := []rune(text)
	total := len(runes)
	if total <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for start := 0; start < total; start += step {
		end := start + chunkSize
		if end > total {
			end = total
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == total {
			break
		}
	}
	return chunks
}
