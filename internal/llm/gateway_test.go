package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efectlabs/parentcoach/internal/config"
)

type fakeProvider struct {
	name  string
	err   error
	calls int
}

func (p *fakeProvider) Name() string      { return p.name }
func (p *fakeProvider) Models() []string  { return []string{p.name + "-model"} }
func (p *fakeProvider) ChatCompletion(_ context.Context, req ChatRequest) (*ChatResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &ChatResponse{Provider: p.name, Model: req.Model, Content: "ok"}, nil
}

func newFakeGateway(def string, providers ...*fakeProvider) *gateway {
	g := &gateway{providers: make(map[string]Provider), defaultProvider: def}
	for _, p := range providers {
		g.providers[p.name] = p
	}
	return g
}

func TestChatRoutesToDefaultProvider(t *testing.T) {
	openaiP := &fakeProvider{name: "openai"}
	anthropicP := &fakeProvider{name: "anthropic"}
	g := newFakeGateway("openai", openaiP, anthropicP)

	resp, err := g.Chat(context.Background(), ChatRequest{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "openai", resp.Provider)
	assert.Equal(t, 1, openaiP.calls)
	assert.Zero(t, anthropicP.calls)
}

func TestChatExplicitProvider(t *testing.T) {
	openaiP := &fakeProvider{name: "openai"}
	anthropicP := &fakeProvider{name: "anthropic"}
	g := newFakeGateway("openai", openaiP, anthropicP)

	resp, err := g.Chat(context.Background(), ChatRequest{Provider: "anthropic", Model: "claude-sonnet-4-20250514"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", resp.Provider)
}

func TestChatSingleAttemptNoRetry(t *testing.T) {
	failing := &fakeProvider{name: "openai", err: errors.New("boom")}
	g := newFakeGateway("openai", failing)

	_, err := g.Chat(context.Background(), ChatRequest{Model: "gpt-4o"})
	require.Error(t, err)
	assert.Equal(t, 1, failing.calls, "an upstream call is attempted exactly once")
}

func TestChatUnknownProvider(t *testing.T) {
	g := newFakeGateway("openai")

	_, err := g.Chat(context.Background(), ChatRequest{Model: "gpt-4o"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestNewGatewayRegistersConfiguredProviders(t *testing.T) {
	g := NewGateway(config.LLMConfig{OpenAIKey: "k", DefaultProvider: "openai"})

	_, err := g.Provider("openai")
	require.NoError(t, err)
	_, err = g.Provider("anthropic")
	require.Error(t, err)

	models := g.ListModels()
	assert.NotEmpty(t, models)
}
