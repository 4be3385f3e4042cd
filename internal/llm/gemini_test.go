package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiTurns(t *testing.T) {
	history, last, err := geminiTurns([]Message{
		{Role: RoleSystem, Content: "ignored"},
		{Role: RoleUser, Content: "I have acne"},
		{Role: RoleAssistant, Content: "Which city?"},
		{Role: RoleUser, Content: "  "},
		{Role: RoleUser, Content: "Lahore"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lahore", last)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, genai.Text("Which city?"), history[1].Parts[0])

	_, _, err = geminiTurns(nil)
	assert.ErrorIs(t, err, ErrNoMessages)
	_, _, err = geminiTurns([]Message{{Role: RoleUser, Content: " "}})
	assert.ErrorIs(t, err, ErrNoMessages)
}

func TestGeminiResponse(t *testing.T) {
	resp, err := geminiResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []genai.Part{genai.Text("Dr. Ayesha "), genai.Text("Khan ")}},
			FinishReason: genai.FinishReasonStop,
		}},
		UsageMetadata: &genai.UsageMetadata{PromptTokenCount: 3, CandidatesTokenCount: 4, TotalTokenCount: 7},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ayesha Khan", resp.Text)
	assert.Equal(t, ProviderGemini, resp.Provider)
	assert.Equal(t, int32(7), resp.Usage.TotalTokens)

	_, err = geminiResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)
	_, err = geminiResponse(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}})
	assert.Error(t, err)
}

func TestJoinSystem(t *testing.T) {
	assert.Equal(t, "a\n\nb", joinSystem([]string{" a ", "", "b"}))
	assert.Equal(t, "", joinSystem(nil))
}
