// Package ui renders the interactive session's terminal output. It only
// formats; all input collection and sequencing lives in the session package.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/deckward-ai/deckward/internal/extract"
	"github.com/deckward-ai/deckward/internal/flashcard"
)

var (
	accent  = lipgloss.Color("11") // yellow
	danger  = lipgloss.Color("9")  // red
	success = lipgloss.Color("10") // green
	info    = lipgloss.Color("14") // cyan
	muted   = lipgloss.Color("8")

	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 6).
			Align(lipgloss.Center)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(info)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(info).
			Padding(0, 2)

	questionStyle = lipgloss.NewStyle().Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(success)
	labelStyle    = lipgloss.NewStyle().Foreground(muted)

	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(danger)
	warnStyle  = lipgloss.NewStyle().Foreground(accent)
	infoStyle  = lipgloss.NewStyle().Foreground(info)
)

var kindLabels = map[extract.Kind]struct {
	Emoji       string
	Name        string
	Description string
}{
	extract.KindText:  {"📝", "Text", "Enter text directly"},
	extract.KindImage: {"🖼️", "Image", "Read text from an image file (.png, .jpeg)"},
	extract.KindAudio: {"🎙️", "Audio", "Transcribe an audio recording (.mp3, .wav)"},
	extract.KindPDF:   {"📄", "PDF", "Extract text from a PDF document"},
	extract.KindURL:   {"🔗", "URL", "Fetch an article from the web"},
	extract.KindTopic: {"🧠", "Topic", "Generate content for a topic name"},
	extract.KindBio:   {"👤", "Bio", "Personalized content from your background"},
}

// Renderer writes styled output to a terminal (or any writer in tests).
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Header() {
	banner := titleStyle.Render("🧠 Deckward 🧠") + "\n" +
		subtitleStyle.Render("Generate study flashcards from anything")
	fmt.Fprintln(r.out, headerStyle.Render(banner))
}

// InputMenu lists the selectable input kinds, numbered 1..n.
func (r *Renderer) InputMenu() {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(muted)).
		Headers("OPTION", "INPUT TYPE", "DESCRIPTION")

	for i, kind := range extract.Kinds() {
		label := kindLabels[kind]
		t.Row(strconv.Itoa(i+1), label.Emoji+" "+label.Name, label.Description)
	}

	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out, labelStyle.Render("Enter an option (1-7) or 'q' to quit."))
}

// Card renders one flashcard with its position in the batch.
func (r *Renderer) Card(index, total int, card flashcard.Card) {
	header := labelStyle.Render(fmt.Sprintf("Card %d/%d · %s · importance %d/%d",
		index, total, card.Category, card.Importance, flashcard.MaxImportance))
	body := header + "\n\n" +
		questionStyle.Render("Q: "+card.Question) + "\n" +
		answerStyle.Render("A: "+card.Answer)
	fmt.Fprintln(r.out, cardStyle.Render(body))
}

// BatchSummary announces the generated set before the cards are shown.
func (r *Renderer) BatchSummary(batch *flashcard.Batch) {
	fmt.Fprintln(r.out, titleStyle.Render(batch.Title)+
		labelStyle.Render(fmt.Sprintf("  (%s · %s · %d cards)", batch.Subject, batch.Difficulty, len(batch.Cards))))
}

func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.out, errorStyle.Render("✗ "+msg))
}

func (r *Renderer) Warn(msg string) {
	fmt.Fprintln(r.out, warnStyle.Render("! "+msg))
}

func (r *Renderer) Info(msg string) {
	fmt.Fprintln(r.out, infoStyle.Render(msg))
}

// Prompt writes an inline prompt without a trailing newline.
func (r *Renderer) Prompt(msg string) {
	fmt.Fprint(r.out, labelStyle.Render(msg+" "))
}
