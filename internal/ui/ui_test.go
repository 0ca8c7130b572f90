package ui

import (
	"bytes"
	"testing"

	"github.com/deckward-ai/deckward/internal/flashcard"
	"github.com/stretchr/testify/assert"
)

func render(write func(r *Renderer)) string {
	out := &bytes.Buffer{}
	write(NewRenderer(out))
	return out.String()
}

func TestHeaderShowsAppName(t *testing.T) {
	out := render(func(r *Renderer) { r.Header() })
	assert.Contains(t, out, "Deckward")
}

func TestInputMenuListsEveryKind(t *testing.T) {
	out := render(func(r *Renderer) { r.InputMenu() })

	for _, name := range []string{"Text", "Image", "Audio", "PDF", "URL", "Topic", "Bio"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "'q' to quit")
}

func TestCardShowsQuestionAnswerAndPosition(t *testing.T) {
	card := flashcard.Card{
		Question:   "What is osmosis?",
		Answer:     "Diffusion of water across a membrane.",
		Category:   "Biology",
		Importance: 4,
	}

	out := render(func(r *Renderer) { r.Card(2, 5, card) })

	assert.Contains(t, out, "What is osmosis?")
	assert.Contains(t, out, "Diffusion of water across a membrane.")
	assert.Contains(t, out, "Card 2/5")
	assert.Contains(t, out, "Biology")
	assert.Contains(t, out, "importance 4/5")
}

func TestBatchSummary(t *testing.T) {
	batch := &flashcard.Batch{
		Set: flashcard.Set{
			Title:      "Cell Biology",
			Subject:    "Biology",
			Difficulty: "Intermediate",
			Cards:      []flashcard.Card{{}, {}},
		},
	}

	out := render(func(r *Renderer) { r.BatchSummary(batch) })

	assert.Contains(t, out, "Cell Biology")
	assert.Contains(t, out, "Intermediate")
	assert.Contains(t, out, "2 cards")
}

func TestMessageLevels(t *testing.T) {
	assert.Contains(t, render(func(r *Renderer) { r.Error("broken") }), "broken")
	assert.Contains(t, render(func(r *Renderer) { r.Warn("careful") }), "careful")
	assert.Contains(t, render(func(r *Renderer) { r.Info("note") }), "note")
	assert.Contains(t, render(func(r *Renderer) { r.Prompt("your move:") }), "your move:")
}
