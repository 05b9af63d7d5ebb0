package tips

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efectlabs/parentcoach/internal/audiostore"
	"github.com/efectlabs/parentcoach/internal/llm"
	"github.com/efectlabs/parentcoach/internal/tts"
)

type scriptedGateway struct {
	responses []string
	err       error
	calls     []llm.ChatRequest
}

func (g *scriptedGateway) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	idx := len(g.calls) - 1
	if idx >= len(g.responses) {
		idx = len(g.responses) - 1
	}
	return &llm.ChatResponse{Content: g.responses[idx]}, nil
}

func (g *scriptedGateway) Provider(string) (llm.Provider, error) {
	return nil, errors.New("no provider")
}
func (g *scriptedGateway) ListModels() []llm.ModelInfo { return nil }

type fixedSpeech struct {
	audio  []byte
	err    error
	failAt int // fail on the nth call (1-based); 0 = never
	inputs []string
}

func (f *fixedSpeech) Name() string { return "fixed" }

func (f *fixedSpeech) Synthesize(_ context.Context, req tts.SynthesisRequest) (*tts.SynthesisResult, error) {
	f.inputs = append(f.inputs, req.Input)
	if f.err != nil && (f.failAt == 0 || len(f.inputs) == f.failAt) {
		return nil, f.err
	}
	return &tts.SynthesisResult{Audio: f.audio, ContentType: "audio/mpeg"}, nil
}

type fixedLanguage string

func (l fixedLanguage) Detect(context.Context, string) string { return string(l) }

func newTestStore(t *testing.T) (*audiostore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := audiostore.New(dir, "/audio")
	require.NoError(t, err)
	return store, dir
}

func defaultOptions() Options {
	return Options{
		Model:       "gpt-4o",
		MaxTokens:   1024,
		Temperature: 0.7,
		Voice:       "alloy",
		AgeGate:     true,
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	gw := &scriptedGateway{responses: []string{
		"Tip 1 for vegetables: Offer choices.\nLet your child pick between two vegetables.",
	}}
	speech := &fixedSpeech{audio: []byte("mp3-bytes")}
	store, dir := newTestStore(t)

	svc := NewService(gw, nil, speech, store, defaultOptions())
	result, err := svc.Generate(context.Background(), "My 2 year old won't eat vegetables")
	require.NoError(t, err)

	require.Len(t, result.Tips, 1)
	tip := result.Tips[0]
	assert.Equal(t, "Tip 1 for vegetables", tip.Title)
	assert.Equal(t, "Offer choices.", tip.Body)
	assert.Equal(t, "Let your child pick between two vegetables.", tip.Details)
	assert.NotEmpty(t, tip.AudioURL)
	assert.True(t, strings.HasPrefix(tip.AudioURL, "/audio/"), "audio url %q", tip.AudioURL)

	// synthesis input is title + ". " + body + ". " + details
	require.Len(t, speech.inputs, 1)
	assert.Equal(t,
		"Tip 1 for vegetables. Offer choices.. Let your child pick between two vegetables.",
		speech.inputs[0])

	// the audio bytes landed on disk
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)

	assert.Equal(t, []string{
		"More tips about My 2 year old won't eat vegetables",
		"How to handle My 2 year old won't eat vegetables with toddlers",
		"Expert advice on My 2 year old won't eat vegetables",
	}, result.CommonQuestions)
}

func TestGenerateAgeGateBlocksBeforeAnyUpstreamCall(t *testing.T) {
	gw := &scriptedGateway{responses: []string{"unused"}}
	speech := &fixedSpeech{audio: []byte("x")}
	store, _ := newTestStore(t)

	svc := NewService(gw, nil, speech, store, defaultOptions())
	_, err := svc.Generate(context.Background(), "tips for mealtime")

	require.ErrorIs(t, err, ErrAgeReferenceRequired)
	assert.Empty(t, gw.calls, "no completion call may be made")
	assert.Empty(t, speech.inputs, "no synthesis call may be made")
}

func TestGenerateAgeGateDisabled(t *testing.T) {
	gw := &scriptedGateway{responses: []string{"Tip 1 for mealtime: Keep it short."}}
	speech := &fixedSpeech{audio: []byte("x")}
	store, _ := newTestStore(t)

	opts := defaultOptions()
	opts.AgeGate = false
	svc := NewService(gw, nil, speech, store, opts)

	result, err := svc.Generate(context.Background(), "tips for mealtime")
	require.NoError(t, err)
	require.Len(t, result.Tips, 1)
}

func TestGenerateSynthesisFailureAbortsAndKeepsEarlierFiles(t *testing.T) {
	gw := &scriptedGateway{responses: []string{
		"Tip 1 for naps: One.\nTip 2 for naps: Two.\nTip 3 for naps: Three.",
	}}
	speech := &fixedSpeech{audio: []byte("x"), err: errors.New("tts down"), failAt: 2}
	store, dir := newTestStore(t)

	svc := NewService(gw, nil, speech, store, defaultOptions())
	_, err := svc.Generate(context.Background(), "my toddler fights naps")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAgeReferenceRequired)

	// tip 1's audio was already written and is not rolled back
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}

func TestGenerateUpstreamFailure(t *testing.T) {
	gw := &scriptedGateway{err: errors.New("completion down")}
	speech := &fixedSpeech{audio: []byte("x")}
	store, _ := newTestStore(t)

	svc := NewService(gw, nil, speech, store, defaultOptions())
	_, err := svc.Generate(context.Background(), "my 3 year old loves dinosaurs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate tips")
}

func TestGenerateNonEnglish(t *testing.T) {
	gw := &scriptedGateway{responses: []string{
		"**팁 1: 채소 거부 대처**\n선택지를 제시하세요.\n\n두 가지 중에 고르게 해 보세요.",
		"1. 질문 하나\n2. 질문 둘\n3. 질문 셋",
	}}
	speech := &fixedSpeech{audio: []byte("x")}
	store, _ := newTestStore(t)

	opts := defaultOptions()
	opts.AgeGate = false // the gate's patterns are English-only
	opts.DetectLanguage = true
	svc := NewService(gw, fixedLanguage("ko"), speech, store, opts)

	result, err := svc.Generate(context.Background(), "아기가 채소를 안 먹어요")
	require.NoError(t, err)

	assert.Equal(t, "ko", result.DetectedLanguage)
	require.Len(t, result.Tips, 1)
	assert.Equal(t, "팁 1: 채소 거부 대처", result.Tips[0].Title)

	assert.Equal(t, []string{"질문 하나", "질문 둘", "질문 셋"}, result.CommonQuestions)

	// the generation call carries the language addendum in its system prompt
	require.Len(t, gw.calls, 2)
	assert.Contains(t, gw.calls[0].Messages[0].Content, `"ko"`)
}

func TestFollowUpQuestionsEnglishTemplates(t *testing.T) {
	gw := &scriptedGateway{}
	store, _ := newTestStore(t)
	svc := NewService(gw, nil, &fixedSpeech{}, store, defaultOptions())

	questions, err := svc.followUpQuestions(context.Background(), "picky eating", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"More tips about picky eating",
		"How to handle picky eating with toddlers",
		"Expert advice on picky eating",
	}, questions)
	assert.Empty(t, gw.calls, "english templates need no completion call")
}

func TestFollowUpQuestionsTranslationFailure(t *testing.T) {
	gw := &scriptedGateway{err: errors.New("upstream down")}
	store, _ := newTestStore(t)
	svc := NewService(gw, nil, &fixedSpeech{}, store, defaultOptions())

	_, err := svc.followUpQuestions(context.Background(), "picky eating", "ko")
	require.Error(t, err)
}

func TestFollowUpQuestionsDiscardsEmptySegments(t *testing.T) {
	gw := &scriptedGateway{responses: []string{"\n1. una\n\n2. dos\n3.   \n"}}
	store, _ := newTestStore(t)
	svc := NewService(gw, nil, &fixedSpeech{}, store, defaultOptions())

	questions, err := svc.followUpQuestions(context.Background(), "x", "es")
	require.NoError(t, err)
	assert.Equal(t, []string{"una", "dos"}, questions)
}
