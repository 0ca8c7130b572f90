package flashcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/deckward-ai/deckward/pkg/logging"
	"github.com/deckward-ai/deckward/pkg/model"
	"github.com/go-playground/validator/v10"
)

const systemPersona = "You are a flash card generator for educational purposes."

const synthesisPromptTemplate = `You are an expert educational flash card creator. Generate high-quality,
educational flash cards from the content below. The cards should be concise,
clear, and cover the most important concepts.

INPUT CONTENT:
%s

INSTRUCTIONS:
1. Analyze the content thoroughly: key concepts, facts, definitions, formulas, and relationships.
2. Create exactly %d flash cards that cover the most important information,
   progress from fundamental to advanced concepts, and mix factual recall with
   conceptual understanding.
3. For each card include a clear question, a concise but complete answer,
   a category label, and an importance rating from 1 to 5 (5 most important).
4. Formulate questions that test understanding, not just memorization.
5. For content with multiple themes, keep coverage balanced.`

// Synthesizer turns normalized text into a validated flashcard batch with a
// single schema-constrained generation call. It performs no retries.
type Synthesizer struct {
	newCardSet model.NewStructureContentGeneratorFunc[Set]
	validate   *validator.Validate
}

func NewSynthesizer(newCardSet model.NewStructureContentGeneratorFunc[Set]) *Synthesizer {
	return &Synthesizer{
		newCardSet: newCardSet,
		validate:   newCardValidator(),
	}
}

// Synthesize requests count cards from the generation service and validates
// each returned card, dropping the ones that fail. It returns fewer cards
// than requested when the service under-delivers; the caller owns the policy
// of whether to warn about the shortfall.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, count int) (*Batch, error) {
	log := logging.NewLogger(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoContent
	}
	if count < 1 {
		return nil, ErrInvalidCardCount
	}

	generator, err := s.newCardSet(fmt.Sprintf(synthesisPromptTemplate, text, count))
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	generator.AddPromptContext(ctx, model.ContextMessageTypeSystem, systemPersona)

	set, meta, err := generator.Generate(ctx)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	log.Infof(
		"synthesis_response provider=%s model=%s latency_ms=%s cards=%d",
		meta[model.MetadataKeyProvider],
		meta[model.MetadataKeyModel],
		meta[model.MetadataKeyLatencyMs],
		len(set.Cards),
	)

	valid := make([]Card, 0, len(set.Cards))
	dropped := 0
	for _, card := range set.Cards {
		if err := s.validate.Struct(card); err != nil {
			dropped++
			log.Warnf("dropping invalid card question=%q: %v", card.Question, err)
			continue
		}
		valid = append(valid, card)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no valid cards in response (%d dropped)", ErrSynthesisFailed, dropped)
	}
	if len(valid) > count {
		valid = valid[:count]
	}

	set.Cards = valid
	if strings.TrimSpace(set.Title) == "" {
		set.Title = "Study Set"
	}
	if strings.TrimSpace(set.Subject) == "" {
		set.Subject = "General"
	}

	return &Batch{Set: set, Dropped: dropped}, nil
}
