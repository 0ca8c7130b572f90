package extract

import (
	"context"
	"fmt"
	"strings"
)

const topicPromptTemplate = "Write a 100-200 word essay on the topic '%s'. Make sure to describe various aspects of the topic. Only output the text, do not include any other information, explanation, or comments."

const bioPromptTemplate = `Based on the following user background, generate study content for this user.
If there are multiple subjects, write the core principles of each at the user's education level.
Do not exceed 1000 words in total. Only output the study content itself.

BACKGROUND:
Name: %s
Age: %d
Degree: %s (year %d)
Course: %s
Interested subjects: %s`

// extractTopic asks the generation backend for introductory content on the
// topic; there is no local extraction for this kind.
func (e *Extractor) extractTopic(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(topicPromptTemplate, strings.TrimSpace(topic))
	return e.generateContent(ctx, prompt)
}

// extractBio asks the generation backend for personalized study content
// built from the structured bio fields.
func (e *Extractor) extractBio(ctx context.Context, bio UserBio) (string, error) {
	prompt := fmt.Sprintf(
		bioPromptTemplate,
		strings.TrimSpace(bio.Name),
		bio.Age,
		strings.TrimSpace(bio.Degree),
		bio.DegreeYear,
		strings.TrimSpace(bio.Course),
		strings.Join(bio.Interests, ", "),
	)
	return e.generateContent(ctx, prompt)
}

func (e *Extractor) generateContent(ctx context.Context, prompt string) (string, error) {
	generator, err := e.newText(prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text, _, err := generator.Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text = strings.TrimSpace(text)
	words := wordCount(text)
	if words < minExtractedWords {
		return "", fmt.Errorf("%w: generated content is too short (%d words)", ErrGenerationFailed, words)
	}
	if words > maxTextWords {
		text = truncateWords(text, maxTextWords)
	}
	return text, nil
}
