package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/deckward-ai/deckward/internal/backend"
	"github.com/deckward-ai/deckward/internal/config"
	"github.com/deckward-ai/deckward/internal/extract"
	"github.com/deckward-ai/deckward/internal/flashcard"
	"github.com/deckward-ai/deckward/internal/session"
	"github.com/deckward-ai/deckward/pkg/logging"
)

func main() {
	configureLogging()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("configuration error: %v", err)
	}

	be, err := backend.Select(cfg)
	if err != nil {
		logrus.Fatalf("configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor := extract.NewExtractor(be.NewText, be.NewVisionOCR, be.NewAudio)
	synthesizer := flashcard.NewSynthesizer(be.NewCardSet)

	s := session.New(os.Stdin, os.Stdout, extractor, synthesizer)
	if err := s.Run(ctx); err != nil {
		logrus.Fatalf("session error: %v", err)
	}
}

// configureLogging keeps service-call logs on stderr and out of the
// interactive flow; bump DECKWARD_LOG_LEVEL=debug to see full prompts.
func configureLogging() {
	level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("DECKWARD_LOG_LEVEL")))
	if err != nil {
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logging.SetLoggerFactory(logging.NewLogrusFactory(logrus.StandardLogger()))
}
