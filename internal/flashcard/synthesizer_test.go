package flashcard

import (
	"context"
	"errors"
	"testing"

	"github.com/deckward-ai/deckward/pkg/model"
	"github.com/stretchr/testify/suite"
)

type fakeSetGenerator struct {
	set      Set
	err      error
	contexts []string
}

func (f *fakeSetGenerator) Generate(ctx context.Context) (Set, model.GenerationMetadata, error) {
	if f.err != nil {
		return Set{}, model.GenerationMetadata{}, f.err
	}
	return f.set, model.GenerationMetadata{}, nil
}

func (f *fakeSetGenerator) AddPromptContext(ctx context.Context, messageType model.ContextMessageType, content string) {
	f.contexts = append(f.contexts, string(messageType)+": "+content)
}

type fakeSetBackend struct {
	generator *fakeSetGenerator
	calls     int
	prompt    string
}

func (f *fakeSetBackend) newCardSet(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[Set], error) {
	f.calls++
	f.prompt = prompt
	return f.generator, nil
}

func validCard(question string) Card {
	return Card{
		Question:   question,
		Answer:     "An answer.",
		Category:   "Biology",
		Importance: 3,
	}
}

type SynthesizerSuite struct {
	suite.Suite
	backend     *fakeSetBackend
	synthesizer *Synthesizer
}

func TestSynthesizerSuite(t *testing.T) {
	suite.Run(t, new(SynthesizerSuite))
}

func (s *SynthesizerSuite) SetupTest() {
	s.backend = &fakeSetBackend{generator: &fakeSetGenerator{}}
	s.synthesizer = NewSynthesizer(s.backend.newCardSet)
}

func (s *SynthesizerSuite) TestReturnsValidatedBatch() {
	s.backend.generator.set = Set{
		Title:      "Cell Biology",
		Subject:    "Biology",
		Difficulty: "Beginner",
		Cards:      []Card{validCard("What is a mitochondrion?"), validCard("What is ATP?")},
	}

	batch, err := s.synthesizer.Synthesize(context.Background(), "Mitochondria are the powerhouse of the cell.", 3)

	s.Require().NoError(err)
	s.Require().NotNil(batch)
	s.Assert().Len(batch.Cards, 2)
	s.Assert().Zero(batch.Dropped)
	s.Assert().Equal("Cell Biology", batch.Title)
	s.Assert().Contains(s.backend.prompt, "Mitochondria are the powerhouse of the cell.")
	s.Assert().Contains(s.backend.prompt, "3 flash cards")
}

func (s *SynthesizerSuite) TestSystemPersonaIsAttached() {
	s.backend.generator.set = Set{Cards: []Card{validCard("Q")}}

	_, err := s.synthesizer.Synthesize(context.Background(), "some text", 1)

	s.Require().NoError(err)
	s.Require().Len(s.backend.generator.contexts, 1)
	s.Assert().Contains(s.backend.generator.contexts[0], "system")
}

func (s *SynthesizerSuite) TestInvalidCardsAreDroppedAndCounted() {
	s.backend.generator.set = Set{
		Cards: []Card{
			validCard("Keep me"),
			{Question: "", Answer: "a", Category: "b", Importance: 3},
			{Question: "q", Answer: "a", Category: "c", Importance: 9},
		},
	}

	batch, err := s.synthesizer.Synthesize(context.Background(), "some text", 5)

	s.Require().NoError(err)
	s.Assert().Len(batch.Cards, 1)
	s.Assert().Equal(2, batch.Dropped)
}

func (s *SynthesizerSuite) TestAllCardsInvalidIsSynthesisFailed() {
	s.backend.generator.set = Set{
		Cards: []Card{{Question: "", Answer: "", Category: "", Importance: 0}},
	}

	_, err := s.synthesizer.Synthesize(context.Background(), "some text", 5)

	s.Require().Error(err)
	s.Assert().ErrorIs(err, ErrSynthesisFailed)
}

func (s *SynthesizerSuite) TestGenerationErrorIsSynthesisFailed() {
	s.backend.generator.err = errors.New("malformed JSON in response")

	_, err := s.synthesizer.Synthesize(context.Background(), "some text", 5)

	s.Require().Error(err)
	s.Assert().ErrorIs(err, ErrSynthesisFailed)
}

func (s *SynthesizerSuite) TestExcessCardsAreTruncatedToRequestedCount() {
	s.backend.generator.set = Set{
		Cards: []Card{validCard("1"), validCard("2"), validCard("3"), validCard("4")},
	}

	batch, err := s.synthesizer.Synthesize(context.Background(), "some text", 2)

	s.Require().NoError(err)
	s.Assert().Len(batch.Cards, 2)
}

func (s *SynthesizerSuite) TestEmptyTextIsRejectedBeforeAnyCall() {
	_, err := s.synthesizer.Synthesize(context.Background(), "   ", 3)

	s.Require().Error(err)
	s.Assert().ErrorIs(err, ErrNoContent)
	s.Assert().Zero(s.backend.calls)
}

func (s *SynthesizerSuite) TestNonPositiveCountIsRejectedBeforeAnyCall() {
	for _, count := range []int{0, -1} {
		_, err := s.synthesizer.Synthesize(context.Background(), "some text", count)
		s.Require().Error(err)
		s.Assert().ErrorIs(err, ErrInvalidCardCount)
	}
	s.Assert().Zero(s.backend.calls)
}

func (s *SynthesizerSuite) TestEmptyTitleAndSubjectGetDefaults() {
	s.backend.generator.set = Set{Cards: []Card{validCard("Q")}}

	batch, err := s.synthesizer.Synthesize(context.Background(), "some text", 1)

	s.Require().NoError(err)
	s.Assert().Equal("Study Set", batch.Title)
	s.Assert().Equal("General", batch.Subject)
}
