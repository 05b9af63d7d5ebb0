package tips

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/efectlabs/parentcoach/internal/agegate"
	"github.com/efectlabs/parentcoach/internal/langdetect"
	"github.com/efectlabs/parentcoach/internal/llm"
	"github.com/efectlabs/parentcoach/internal/tts"
)

// ErrAgeReferenceRequired is returned when the age gate is enabled and
// the prompt carries no age or life-stage signal. No upstream call has
// been made when this is returned.
var ErrAgeReferenceRequired = errors.New("prompt must mention the child's age or life stage")

// LanguageDetector resolves the language of user text.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) string
}

// AudioStore persists synthesized audio and maps stored files to the
// paths clients fetch them from.
type AudioStore interface {
	Save(audio []byte) (string, error)
	PublicPath(filename string) string
}

// Options control one Service's generation behavior.
type Options struct {
	Model          string
	MaxTokens      int
	Temperature    float64
	Voice          string
	AgeGate        bool
	DetectLanguage bool
}

// Service orchestrates one generation request end to end: gate, detect,
// complete, parse, synthesize, store.
type Service struct {
	gateway  llm.Gateway
	detector LanguageDetector
	speech   tts.Provider
	store    AudioStore
	opts     Options
}

func NewService(gw llm.Gateway, detector LanguageDetector, speech tts.Provider, store AudioStore, opts Options) *Service {
	return &Service{
		gateway:  gw,
		detector: detector,
		speech:   speech,
		store:    store,
		opts:     opts,
	}
}

// Generate runs the full pipeline for one prompt. Per-tip synthesis is
// strictly sequential. Any upstream or filesystem failure aborts the
// whole request; audio already written stays on disk and is left to the
// retention sweep.
func (s *Service) Generate(ctx context.Context, prompt string) (*GenerateResult, error) {
	if s.opts.AgeGate && !agegate.HasAgeReference(prompt) {
		return nil, ErrAgeReferenceRequired
	}

	lang := langdetect.DefaultLanguage
	if s.opts.DetectLanguage && s.detector != nil {
		lang = s.detector.Detect(ctx, prompt)
	}

	system := systemPrompt
	if lang != langdetect.DefaultLanguage {
		system += languageAddendum(lang)
	}

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.opts.Model,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate tips: %w", err)
	}

	parsed := ParseTips(resp.Content)
	if parsed == nil {
		parsed = []Tip{}
	}

	for i := range parsed {
		input := parsed[i].Title + ". " + parsed[i].Body + ". " + parsed[i].Details
		audio, err := s.speech.Synthesize(ctx, tts.SynthesisRequest{
			Input: input,
			Voice: s.opts.Voice,
		})
		if err != nil {
			return nil, fmt.Errorf("synthesize tip %q: %w", parsed[i].Title, err)
		}

		filename, err := s.store.Save(audio.Audio)
		if err != nil {
			return nil, fmt.Errorf("store tip audio: %w", err)
		}
		parsed[i].AudioURL = s.store.PublicPath(filename)
	}

	questions, err := s.followUpQuestions(ctx, prompt, lang)
	if err != nil {
		return nil, err
	}

	slog.Info("generated tips", "count", len(parsed), "language", lang)

	result := &GenerateResult{
		Tips:            parsed,
		CommonQuestions: questions,
	}
	if s.opts.DetectLanguage {
		result.DetectedLanguage = lang
	}
	return result, nil
}
