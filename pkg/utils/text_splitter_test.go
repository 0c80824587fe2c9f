package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("짧은 문서", 100, 10)
	assert.Equal(t, []string{"짧은 문서"}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("가나다라마바사아자차", 10) // 100 runes
	chunks := SplitText(text, 40, 10)

	assert.Greater(t, len(chunks), 1)
	for i := 0; i < len(chunks)-1; i++ {
		assert.Equal(t, 40, len([]rune(chunks[i])))
		// The tail of one chunk repeats at the head of the next.
		tail := string([]rune(chunks[i])[30:])
		assert.True(t, strings.HasPrefix(chunks[i+1], tail))
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("한국생활정보 ", 50)
	chunks := SplitText(text, 37, 5)

	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))
}

func TestSplitTextOverlapAtLeastChunkSize(t *testing.T) {
	text := strings.Repeat("a", 50)
	chunks := SplitText(text, 10, 10) // step would be 0; falls back to chunkSize

	assert.Equal(t, 5, len(chunks))
	assert.Equal(t, text, strings.Join(chunks, ""))
}
