package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	appconfig "github.com/wolfman30/doctor-finder/internal/config"
	"github.com/wolfman30/doctor-finder/internal/llm"
	"github.com/wolfman30/doctor-finder/pkg/logging"
)

// BuildLLMClient chains Gemini and Bedrock in that order, skipping whichever
// is not configured. It returns nil when neither is, which leaves replies to
// the local phrasing. The close func releases the Gemini client.
func BuildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (llm.Client, func(), error) {
	if cfg == nil {
		return nil, func() {}, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	var clients []llm.Client
	closeFn := func() {}

	if key := strings.TrimSpace(cfg.GeminiAPIKey); key != "" {
		gemini, err := llm.NewGeminiClient(ctx, key, cfg.GeminiModelID)
		if err != nil {
			return nil, closeFn, fmt.Errorf("bootstrap: gemini client: %w", err)
		}
		clients = append(clients, gemini)
		closeFn = func() { _ = gemini.Close() }
		logger.Info("gemini enabled", "model", cfg.GeminiModelID)
	}

	if model := strings.TrimSpace(cfg.BedrockModelID); model != "" {
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			closeFn()
			return nil, func() {}, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		clients = append(clients, llm.NewBedrockClient(bedrockruntime.NewFromConfig(awsCfg), model))
		logger.Info("bedrock enabled", "model", model)
	}

	switch len(clients) {
	case 0:
		logger.Warn("no LLM configured, replies use local phrasing")
		return nil, closeFn, nil
	case 1:
		return clients[0], closeFn, nil
	default:
		return llm.NewFallbackClient(logger, clients...), closeFn, nil
	}
}
