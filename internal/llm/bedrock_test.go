package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConverse struct {
	input *bedrockruntime.ConverseInput
	out   *bedrockruntime.ConverseOutput
	err   error
}

func (s *stubConverse) Converse(_ context.Context, params *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	s.input = params
	return s.out, s.err
}

func textOutput(text string) *bedrockruntime.ConverseOutput {
	return &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{Value: brtypes.Message{
			Role:    brtypes.ConversationRoleAssistant,
			Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: text}},
		}},
		StopReason: brtypes.StopReasonEndTurn,
		Usage: &brtypes.TokenUsage{
			InputTokens:  aws.Int32(10),
			OutputTokens: aws.Int32(5),
			TotalTokens:  aws.Int32(15),
		},
	}
}

func TestBedrockClientComplete(t *testing.T) {
	api := &stubConverse{out: textOutput("  Here are two psychiatrists.  ")}
	client := NewBedrockClient(api, "anthropic.claude-3-haiku")

	resp, err := client.Complete(context.Background(), Request{
		System: []string{"Only use the listed doctors.", " "},
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "Hello!"},
			{Role: RoleSystem, Content: "Extra context"},
			{Role: RoleUser, Content: "psychiatrist in Lahore"},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Here are two psychiatrists.", resp.Text)
	assert.Equal(t, ProviderBedrock, resp.Provider)
	assert.Equal(t, int32(15), resp.Usage.TotalTokens)

	require.NotNil(t, api.input)
	assert.Equal(t, "anthropic.claude-3-haiku", aws.ToString(api.input.ModelId))
	assert.Len(t, api.input.System, 2)
	assert.Len(t, api.input.Messages, 3)
	require.NotNil(t, api.input.InferenceConfig)
	assert.Equal(t, int32(500), aws.ToInt32(api.input.InferenceConfig.MaxTokens))
}

func TestBedrockClientErrors(t *testing.T) {
	_, err := NewBedrockClient(&stubConverse{}, "").Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	assert.Error(t, err)

	_, err = NewBedrockClient(&stubConverse{}, "m").Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoMessages)

	_, err = NewBedrockClient(&stubConverse{}, "m").Complete(context.Background(), Request{Messages: []Message{{Role: "tool", Content: "x"}}})
	assert.Error(t, err)

	boom := errors.New("throttled")
	_, err = NewBedrockClient(&stubConverse{err: boom}, "m").Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	assert.ErrorIs(t, err, boom)

	_, err = NewBedrockClient(&stubConverse{out: textOutput("   ")}, "m").Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	assert.Error(t, err)
}

func TestBedrockInferenceOmittedWhenUnset(t *testing.T) {
	assert.Nil(t, bedrockInference(Request{Temperature: -1}))
	cfg := bedrockInference(Request{Temperature: 0})
	require.NotNil(t, cfg)
	assert.Equal(t, float32(0), aws.ToFloat32(cfg.Temperature))
}
