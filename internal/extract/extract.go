package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deckward-ai/deckward/pkg/logging"
	"github.com/deckward-ai/deckward/pkg/model"
)

var (
	// ErrUnsupportedFormat is returned before any I/O when a file payload has
	// an extension outside the kind's allowlist.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailed is returned when a local or hosted extraction step
	// errors or yields unusable text.
	ErrExtractionFailed = errors.New("failed to extract text from input")

	// ErrFetchFailed is returned when a URL cannot be fetched or parsed.
	ErrFetchFailed = errors.New("failed to fetch content from URL")

	// ErrGenerationFailed is returned when topic or bio content generation
	// errors or yields unusable text.
	ErrGenerationFailed = errors.New("failed to generate content")

	// ErrInvalidRequest is returned when a request's payload does not match
	// its kind.
	ErrInvalidRequest = errors.New("invalid extraction request")
)

// Word-count bounds on normalized text. An extraction that lands outside
// them is not worth synthesizing cards from.
const (
	minTextWords      = 30
	maxTextWords      = 2000
	minExtractedWords = 10
	maxPDFWords       = 4000
)

// Kind enumerates the supported input kinds.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindAudio Kind = "audio"
	KindPDF   Kind = "pdf"
	KindURL   Kind = "url"
	KindTopic Kind = "topic"
	KindBio   Kind = "bio"
)

// Kinds lists every supported input kind in menu order.
func Kinds() []Kind {
	return []Kind{KindText, KindImage, KindAudio, KindPDF, KindURL, KindTopic, KindBio}
}

// UserBio carries the structured background fields used for personalized
// study content.
type UserBio struct {
	Name       string
	Age        int
	Degree     string
	DegreeYear int
	Course     string
	Interests  []string
}

// Request is a tagged union over the supported input kinds. Exactly one
// payload field is meaningful for a given kind; use the constructors.
type Request struct {
	Kind     Kind
	Text     string
	FilePath string
	URL      string
	Topic    string
	Bio      *UserBio
}

func TextRequest(text string) Request {
	return Request{Kind: KindText, Text: text}
}

func ImageRequest(path string) Request {
	return Request{Kind: KindImage, FilePath: path}
}

func AudioRequest(path string) Request {
	return Request{Kind: KindAudio, FilePath: path}
}

func PDFRequest(path string) Request {
	return Request{Kind: KindPDF, FilePath: path}
}

func URLRequest(url string) Request {
	return Request{Kind: KindURL, URL: url}
}

func TopicRequest(topic string) Request {
	return Request{Kind: KindTopic, Topic: topic}
}

func BioRequest(bio UserBio) Request {
	return Request{Kind: KindBio, Bio: &bio}
}

// Validate checks payload/kind agreement before any extraction work.
func (r Request) Validate() error {
	switch r.Kind {
	case KindText:
		if strings.TrimSpace(r.Text) == "" {
			return fmt.Errorf("%w: text payload is empty", ErrInvalidRequest)
		}
	case KindImage, KindAudio, KindPDF:
		if strings.TrimSpace(r.FilePath) == "" {
			return fmt.Errorf("%w: file path is empty", ErrInvalidRequest)
		}
	case KindURL:
		if strings.TrimSpace(r.URL) == "" {
			return fmt.Errorf("%w: url is empty", ErrInvalidRequest)
		}
	case KindTopic:
		if strings.TrimSpace(r.Topic) == "" {
			return fmt.Errorf("%w: topic is empty", ErrInvalidRequest)
		}
	case KindBio:
		if r.Bio == nil {
			return fmt.Errorf("%w: bio is missing", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, r.Kind)
	}
	return nil
}

// Extractor normalizes every supported input kind into plain text, delegating
// per-kind heavy lifting to the configured generator backends. It never
// returns an empty string alongside a nil error.
type Extractor struct {
	newText    model.NewStringContentGeneratorFunc
	newVision  model.NewVisionOCRGeneratorFunc
	newAudio   model.NewAudioTranscriptionGeneratorFunc
	httpClient *http.Client
}

func NewExtractor(
	newText model.NewStringContentGeneratorFunc,
	newVision model.NewVisionOCRGeneratorFunc,
	newAudio model.NewAudioTranscriptionGeneratorFunc,
) *Extractor {
	return &Extractor{
		newText:   newText,
		newVision: newVision,
		newAudio:  newAudio,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Extract normalizes the request into plain text or returns one of the
// package's sentinel errors.
func (e *Extractor) Extract(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	log := logging.NewLogger(ctx)
	log.Infof("extract_request kind=%s", req.Kind)

	switch req.Kind {
	case KindText:
		return extractText(req.Text)
	case KindImage:
		return e.extractImage(ctx, req.FilePath)
	case KindAudio:
		return e.extractAudio(ctx, req.FilePath)
	case KindPDF:
		return extractPDF(req.FilePath)
	case KindURL:
		return e.extractURL(ctx, req.URL)
	case KindTopic:
		return e.extractTopic(ctx, req.Topic)
	case KindBio:
		return e.extractBio(ctx, *req.Bio)
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, req.Kind)
	}
}

func extractText(text string) (string, error) {
	text = strings.TrimSpace(text)
	words := wordCount(text)
	if words < minTextWords {
		return "", fmt.Errorf("%w: text is too short (%d words, need at least %d)", ErrExtractionFailed, words, minTextWords)
	}
	if words > maxTextWords {
		return "", fmt.Errorf("%w: text is too long (%d words, at most %d)", ErrExtractionFailed, words, maxTextWords)
	}
	return text, nil
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}
