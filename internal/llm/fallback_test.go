package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	resp  Response
	err   error
	calls int
}

func (s *stubClient) Complete(context.Context, Request) (Response, error) {
	s.calls++
	return s.resp, s.err
}

func TestFallbackClientUsesPrimary(t *testing.T) {
	primary := &stubClient{resp: Response{Text: "primary", Provider: ProviderGemini}}
	secondary := &stubClient{resp: Response{Text: "secondary"}}

	resp, err := NewFallbackClient(nil, primary, secondary).Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "primary", resp.Text)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackClientFallsBack(t *testing.T) {
	primary := &stubClient{err: errors.New("quota exceeded")}
	secondary := &stubClient{resp: Response{Text: "secondary", Provider: ProviderBedrock}}

	resp, err := NewFallbackClient(nil, primary, nil, secondary).Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "secondary", resp.Text)
	assert.Equal(t, 1, primary.calls)
}

func TestFallbackClientAllFail(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	client := NewFallbackClient(nil, &stubClient{err: first}, &stubClient{err: second})

	_, err := client.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestFallbackClientStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	secondary := &stubClient{resp: Response{Text: "late"}}
	_, err := NewFallbackClient(nil, &stubClient{err: context.Canceled}, secondary).Complete(ctx, Request{})
	assert.Error(t, err)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackClientEmpty(t *testing.T) {
	client := NewFallbackClient(nil)
	assert.Equal(t, 0, client.Len())
	_, err := client.Complete(context.Background(), Request{})
	assert.Error(t, err)
}
