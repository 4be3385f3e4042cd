package llm

import (
	"context"
	"errors"

	"github.com/wolfman30/doctor-finder/pkg/logging"
)

// FallbackClient tries each provider in order and returns the first success.
type FallbackClient struct {
	clients []Client
	logger  *logging.Logger
}

// NewFallbackClient chains the given clients; nil entries are skipped.
func NewFallbackClient(logger *logging.Logger, clients ...Client) *FallbackClient {
	if logger == nil {
		logger = logging.Default()
	}
	var kept []Client
	for _, c := range clients {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &FallbackClient{clients: kept, logger: logger}
}

// Len reports how many providers are configured.
func (c *FallbackClient) Len() int {
	return len(c.clients)
}

func (c *FallbackClient) Complete(ctx context.Context, req Request) (Response, error) {
	if len(c.clients) == 0 {
		return Response{}, errors.New("llm: no providers configured")
	}

	var errs []error
	for i, client := range c.clients {
		resp, err := client.Complete(ctx, req)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback LLM succeeded after earlier failure", "attempt", i+1, "provider", resp.Provider)
			}
			return resp, nil
		}
		errs = append(errs, err)
		c.logger.Warn("LLM provider failed", "attempt", i+1, "error", err, "remaining", len(c.clients)-i-1)
		if ctx.Err() != nil {
			break
		}
	}
	return Response{}, errors.Join(errs...)
}
