// Package session drives the interactive loop: select an input kind, collect
// its payload, extract text, synthesize flashcards, display them, repeat.
package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/deckward-ai/deckward/internal/extract"
	"github.com/deckward-ai/deckward/internal/flashcard"
	"github.com/deckward-ai/deckward/internal/ui"
	"github.com/deckward-ai/deckward/pkg/logging"
)

const defaultCardCount = 5

// Extractor normalizes one input request into plain text.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) (string, error)
}

// Synthesizer turns normalized text into a validated flashcard batch.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, count int) (*flashcard.Batch, error)
}

type state int

const (
	stateSelectInput state = iota
	stateCollectPayload
	stateExtract
	stateSynthesize
	stateDisplay
	stateAskRepeat
	stateDone
)

// errQuit signals an explicit quit (or closed stdin) at any prompt.
var errQuit = errors.New("quit requested")

// Session owns one interactive run. All reads block on the input reader and
// every external call completes before the next prompt; nothing is shared
// across request/response cycles except the loop itself.
type Session struct {
	in          *bufio.Reader
	render      *ui.Renderer
	extractor   Extractor
	synthesizer Synthesizer

	// statFile is swapped in tests.
	statFile func(path string) error
}

func New(in io.Reader, out io.Writer, extractor Extractor, synthesizer Synthesizer) *Session {
	return &Session{
		in:          bufio.NewReader(in),
		render:      ui.NewRenderer(out),
		extractor:   extractor,
		synthesizer: synthesizer,
		statFile: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
	}
}

// Run executes the state machine until the user quits or declines another
// round. It returns nil on a clean exit.
func (s *Session) Run(ctx context.Context) error {
	log := logging.NewLogger(ctx)
	s.render.Header()

	var (
		req   extract.Request
		count int
		text  string
		batch *flashcard.Batch
	)

	current := stateSelectInput
	for current != stateDone {
		switch current {
		case stateSelectInput:
			kind, err := s.selectInput()
			if err != nil {
				return s.finish(err)
			}
			req = extract.Request{Kind: kind}
			current = stateCollectPayload

		case stateCollectPayload:
			collected, n, err := s.collectPayload(req.Kind)
			if err != nil {
				if errors.Is(err, errQuit) {
					return s.finish(err)
				}
				// Payload collection was abandoned; start over.
				current = stateSelectInput
				continue
			}
			req, count = collected, n
			current = stateExtract

		case stateExtract:
			s.render.Info("Extracting content...")
			extracted, err := s.extractor.Extract(ctx, req)
			if err != nil {
				log.Errorf("error: %v", err)
				s.render.Error(describeError(err))
				current = stateSelectInput
				continue
			}
			text = extracted
			current = stateSynthesize

		case stateSynthesize:
			s.render.Info("Generating flashcards...")
			result, err := s.synthesizer.Synthesize(ctx, text, count)
			if err != nil {
				log.Errorf("error: %v", err)
				s.render.Error(describeError(err))
				current = stateSelectInput
				continue
			}
			batch = result
			current = stateDisplay

		case stateDisplay:
			if err := s.display(batch, count); err != nil {
				return s.finish(err)
			}
			current = stateAskRepeat

		case stateAskRepeat:
			again, err := s.askRepeat()
			if err != nil {
				return s.finish(err)
			}
			if again {
				current = stateSelectInput
			} else {
				current = stateDone
			}
		}
	}

	s.render.Info("Happy studying!")
	return nil
}

// finish maps an explicit quit to a clean exit.
func (s *Session) finish(err error) error {
	if errors.Is(err, errQuit) {
		s.render.Info("Goodbye!")
		return nil
	}
	return err
}

func (s *Session) selectInput() (extract.Kind, error) {
	kinds := extract.Kinds()
	for {
		s.render.InputMenu()
		s.render.Prompt("Select input type:")
		line, err := s.readLine()
		if err != nil {
			return "", err
		}

		choice, convErr := strconv.Atoi(line)
		if convErr != nil || choice < 1 || choice > len(kinds) {
			s.render.Warn("Invalid selection, try again.")
			continue
		}
		return kinds[choice-1], nil
	}
}

func (s *Session) collectPayload(kind extract.Kind) (extract.Request, int, error) {
	var req extract.Request
	var err error

	switch kind {
	case extract.KindText:
		req, err = s.collectText()
	case extract.KindImage, extract.KindAudio, extract.KindPDF:
		req, err = s.collectFilePath(kind)
	case extract.KindURL:
		req, err = s.collectURL()
	case extract.KindTopic:
		req, err = s.collectTopic()
	case extract.KindBio:
		req, err = s.collectBio()
	}
	if err != nil {
		return extract.Request{}, 0, err
	}

	count, err := s.collectCardCount()
	if err != nil {
		return extract.Request{}, 0, err
	}
	return req, count, nil
}

func (s *Session) collectText() (extract.Request, error) {
	s.render.Prompt("Enter your text:")
	line, err := s.readLine()
	if err != nil {
		return extract.Request{}, err
	}
	return extract.TextRequest(line), nil
}

func (s *Session) collectFilePath(kind extract.Kind) (extract.Request, error) {
	for {
		s.render.Prompt("Enter the file path:")
		path, err := s.readLine()
		if err != nil {
			return extract.Request{}, err
		}
		if path == "" {
			return extract.Request{}, errors.New("no path given")
		}
		if statErr := s.statFile(path); statErr != nil {
			s.render.Warn("File not found: " + path)
			continue
		}

		switch kind {
		case extract.KindImage:
			return extract.ImageRequest(path), nil
		case extract.KindAudio:
			return extract.AudioRequest(path), nil
		default:
			return extract.PDFRequest(path), nil
		}
	}
}

func (s *Session) collectURL() (extract.Request, error) {
	for {
		s.render.Prompt("Enter the URL:")
		raw, err := s.readLine()
		if err != nil {
			return extract.Request{}, err
		}

		parsed, parseErr := url.Parse(raw)
		if parseErr != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			s.render.Warn("That doesn't look like an http(s) URL.")
			continue
		}
		return extract.URLRequest(raw), nil
	}
}

func (s *Session) collectTopic() (extract.Request, error) {
	for {
		s.render.Prompt("Enter a topic:")
		topic, err := s.readLine()
		if err != nil {
			return extract.Request{}, err
		}
		if topic == "" {
			s.render.Warn("Topic cannot be empty.")
			continue
		}
		return extract.TopicRequest(topic), nil
	}
}

func (s *Session) collectBio() (extract.Request, error) {
	bio := extract.UserBio{}
	var err error

	s.render.Prompt("Name:")
	if bio.Name, err = s.readLine(); err != nil {
		return extract.Request{}, err
	}
	if bio.Age, err = s.readInt("Age:"); err != nil {
		return extract.Request{}, err
	}
	s.render.Prompt("Degree:")
	if bio.Degree, err = s.readLine(); err != nil {
		return extract.Request{}, err
	}
	if bio.DegreeYear, err = s.readInt("Degree year:"); err != nil {
		return extract.Request{}, err
	}
	s.render.Prompt("Course:")
	if bio.Course, err = s.readLine(); err != nil {
		return extract.Request{}, err
	}
	s.render.Prompt("Interested subjects (comma separated):")
	interests, err := s.readLine()
	if err != nil {
		return extract.Request{}, err
	}
	for _, subject := range strings.Split(interests, ",") {
		if subject = strings.TrimSpace(subject); subject != "" {
			bio.Interests = append(bio.Interests, subject)
		}
	}

	return extract.BioRequest(bio), nil
}

// collectCardCount prompts for the requested number of cards; empty input
// takes the default. Zero or negative counts never reach a service call.
func (s *Session) collectCardCount() (int, error) {
	for {
		s.render.Prompt("How many cards? [" + strconv.Itoa(defaultCardCount) + "]")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return defaultCardCount, nil
		}

		count, convErr := strconv.Atoi(line)
		if convErr != nil || count < 1 {
			s.render.Warn("Card count must be a positive number.")
			continue
		}
		return count, nil
	}
}

func (s *Session) display(batch *flashcard.Batch, requested int) error {
	s.render.BatchSummary(batch)
	if batch.Dropped > 0 {
		s.render.Warn(strconv.Itoa(batch.Dropped) + " card(s) failed validation and were dropped.")
	}
	if len(batch.Cards) < requested {
		s.render.Warn("Generated " + strconv.Itoa(len(batch.Cards)) + " of " + strconv.Itoa(requested) + " requested cards.")
	}

	for i, card := range batch.Cards {
		s.render.Card(i+1, len(batch.Cards), card)
		if i < len(batch.Cards)-1 {
			s.render.Prompt("Press Enter for the next card...")
			if _, err := s.readLine(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) askRepeat() (bool, error) {
	for {
		s.render.Prompt("Generate more cards? (y/n)")
		line, err := s.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			s.render.Warn("Please answer y or n.")
		}
	}
}

func (s *Session) readInt(prompt string) (int, error) {
	for {
		s.render.Prompt(prompt)
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}

		value, convErr := strconv.Atoi(line)
		if convErr != nil {
			s.render.Warn("Please enter a number.")
			continue
		}
		return value, nil
	}
}

// readLine blocks for one line of input. EOF and an explicit "q" both map to
// errQuit so any prompt is an exit point.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errQuit
	}

	line = strings.TrimSpace(line)
	if line == "q" || line == "quit" {
		return "", errQuit
	}
	return line, nil
}

// describeError keeps the terminal message abstract; details are in the log.
func describeError(err error) string {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return "That file format is not supported."
	case errors.Is(err, extract.ErrFetchFailed):
		return "Could not fetch the URL."
	case errors.Is(err, extract.ErrGenerationFailed):
		return "Content generation failed, please try again."
	case errors.Is(err, extract.ErrExtractionFailed):
		return "Could not extract usable text from that input."
	case errors.Is(err, flashcard.ErrSynthesisFailed):
		return "Flashcard generation failed, please try again."
	default:
		return "Something went wrong, please try again."
	}
}
