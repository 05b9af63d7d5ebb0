// Package langdetect resolves the language of free-form user text by
// asking the chat model for an ISO code. Detection is best-effort: any
// upstream failure falls back to English rather than failing the request.
package langdetect

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/efectlabs/parentcoach/internal/llm"
)

// DefaultLanguage is returned whenever detection cannot produce a usable code.
const DefaultLanguage = "en"

const systemInstruction = "You are a language detector. Reply with only the ISO 639-1 " +
	"language code of the user's text (for example \"en\", \"ko\", \"pt-BR\"). " +
	"No explanation, no punctuation, just the code."

var codeRe = regexp.MustCompile(`^[a-z]{2}(-[a-zA-Z]{2,4})?$`)

type Detector struct {
	gateway llm.Gateway
	model   string
}

func NewDetector(gw llm.Gateway, model string) *Detector {
	return &Detector{gateway: gw, model: model}
}

// Detect returns a lowercase language code for the given text. A single
// completion call; on any failure it fails open to DefaultLanguage.
func (d *Detector) Detect(ctx context.Context, text string) string {
	resp, err := d.gateway.Chat(ctx, llm.ChatRequest{
		Model: d.model,
		Messages: []llm.Message{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: text},
		},
		MaxTokens: 10,
	})
	if err != nil {
		slog.Warn("language detection failed, defaulting", "default", DefaultLanguage, "error", err)
		return DefaultLanguage
	}

	code := strings.ToLower(strings.TrimSpace(resp.Content))
	if !codeRe.MatchString(code) {
		slog.Warn("language detection returned unusable code", "code", code)
		return DefaultLanguage
	}
	return code
}
