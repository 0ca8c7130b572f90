package flashcard

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrSynthesisFailed is returned when the generation service response is
	// unusable: not parseable, empty, or no card survives validation.
	ErrSynthesisFailed = errors.New("failed to synthesize flashcards")

	// ErrNoContent is returned when there is no normalized text to work from.
	ErrNoContent = errors.New("no content to synthesize flashcards from")

	// ErrInvalidCardCount is returned for a requested count below one.
	ErrInvalidCardCount = errors.New("requested card count must be at least 1")
)

const (
	MinImportance = 1
	MaxImportance = 5
)

// Card is one question/answer study unit. Immutable once validated.
type Card struct {
	Question   string `json:"question" jsonschema:"description=Question on the front of the card" validate:"required"`
	Answer     string `json:"answer" jsonschema:"description=Answer on the back of the card" validate:"required"`
	Category   string `json:"category" jsonschema:"description=Category or topic label" validate:"required"`
	Importance int    `json:"importance" jsonschema:"description=Importance rating from 1 to 5 with 5 being most important" validate:"min=1,max=5"`
}

// Set is the structured envelope the generation service is constrained to.
type Set struct {
	Title      string `json:"title" jsonschema:"description=Title for the set of flash cards"`
	Subject    string `json:"subject" jsonschema:"description=The general subject area"`
	Cards      []Card `json:"cards" jsonschema:"description=List of flash cards"`
	Difficulty string `json:"difficulty" jsonschema:"description=Overall difficulty level (Beginner, Intermediate, Advanced)"`
}

// Batch is a validated Set plus the number of cards dropped by validation.
// The orchestrator decides whether to surface the drop to the user.
type Batch struct {
	Set
	Dropped int
}

func newCardValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
