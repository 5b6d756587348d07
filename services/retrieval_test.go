package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkTextShortInput(t *testing.T) {
	chunks := chunkText("short text", chunkSize, chunkOverlap)
	require.Equal(t, []string{"short text"}, chunks)
}

func TestChunkTextSizeAndOverlap(t *testing.T) {
	text := strings.Repeat("a", 2500)
	chunks := chunkText(text, 1000, 150)

	require.Len(t, chunks, 3)
	for i, chunk := range chunks[:len(chunks)-1] {
		require.Len(t, chunk, 1000, "chunk %d", i)
	}
	require.Equal(t, 800, len(chunks[2]))
}

func TestChunkTextOverlapContent(t *testing.T) {
	// Consecutive chunks share exactly the overlap region.
	var b strings.Builder
	for i := 0; b.Len() < 2500; i++ {
		b.WriteString(strings.Repeat(string(rune('a'+i%26)), 10))
	}
	text := b.String()

	chunks := chunkText(text, 1000, 150)
	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i][len(chunks[i])-150:]
		head := chunks[i+1][:150]
		require.Equal(t, tail, head, "chunks %d and %d", i, i+1)
	}
}

func TestChunkTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("xyz", 700)
	chunks := chunkText(text, 1000, 150)

	require.True(t, strings.HasPrefix(text, chunks[0]))
	require.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]))

	// Reassembling without the overlapped prefixes restores the input.
	rebuilt := chunks[0]
	for _, chunk := range chunks[1:] {
		rebuilt += chunk[150:]
	}
	require.Equal(t, text, rebuilt)
}

func TestRAGServiceSearchBeforeInitialize(t *testing.T) {
	r := NewRAGService(t.TempDir())
	_, err := r.Search(context.Background(), "query", 4)
	require.Error(t, err)
}
