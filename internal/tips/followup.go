package tips

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/efectlabs/parentcoach/internal/langdetect"
	"github.com/efectlabs/parentcoach/internal/llm"
)

var followupTemplates = []string{
	"More tips about %s",
	"How to handle %s with toddlers",
	"Expert advice on %s",
}

var ordinalRe = regexp.MustCompile(`\d+\.\s+`)

// followUpQuestions produces the suggested next questions shown under the
// tips. English prompts get fixed templates; any other language gets one
// translation completion whose reply is split on "<n>. " markers. The
// item count of the translated list is not validated.
func (s *Service) followUpQuestions(ctx context.Context, prompt, lang string) ([]string, error) {
	questions := make([]string, len(followupTemplates))
	for i, tmpl := range followupTemplates {
		questions[i] = fmt.Sprintf(tmpl, prompt)
	}

	if lang == langdetect.DefaultLanguage {
		return questions, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate the following questions into the language with ISO code %q. ", lang)
	sb.WriteString("Reply with only the translated questions, numbered \"1. \", \"2. \", \"3. \".\n")
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.opts.Model,
		Messages: []llm.Message{
			{Role: "user", Content: sb.String()},
		},
		MaxTokens: s.opts.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("translate follow-up questions: %w", err)
	}

	var translated []string
	for _, part := range ordinalRe.Split(resp.Content, -1) {
		if part = strings.TrimSpace(part); part != "" {
			translated = append(translated, part)
		}
	}
	return translated, nil
}
