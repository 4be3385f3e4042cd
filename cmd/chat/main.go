package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/wolfman30/doctor-finder/internal/app/bootstrap"
	"github.com/wolfman30/doctor-finder/internal/assistant"
	appconfig "github.com/wolfman30/doctor-finder/internal/config"
	"github.com/wolfman30/doctor-finder/internal/doctors"
	"github.com/wolfman30/doctor-finder/internal/ingest"
	"github.com/wolfman30/doctor-finder/pkg/logging"
)

const banner = `Doctor Finder (Islamabad and Lahore)
Ask for a specialist or describe a symptom. Type "reset" to start over, "quit" to exit.`

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.NewWithWriter(cfg.LogLevel, "text", os.Stderr)

	if err := run(context.Background(), cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("chat failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, in io.Reader, out io.Writer) error {
	store, pool, err := bootstrap.BuildDoctorStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	source, err := bootstrap.BuildSource(ctx, cfg)
	if err != nil {
		return err
	}
	if ok, err := bootstrap.ShouldImport(ctx, cfg, store, source); err == nil && ok {
		if _, err := ingest.NewImporter(store, nil, logger).Import(ctx, source); err != nil {
			logger.Warn("import failed, continuing with an empty store", "error", err)
		}
	}

	client, closeLLM, err := bootstrap.BuildLLMClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLLM()

	dispatcher := assistant.NewDispatcher(doctors.NewSearcher(store, nil, logger), client, assistant.Config{
		MaxDoctors:      cfg.MaxDoctorsDisplay,
		MaxHistoryTurns: cfg.MaxConversationHistory,
		BudgetMaxFee:    cfg.BudgetMaxFee,
		LLMTimeout:      cfg.LLMTimeout,
	}, nil, logger)

	return loop(ctx, dispatcher, cfg.MaxConversationHistory, in, out)
}

// loop reads one message per line until EOF or "quit".
func loop(ctx context.Context, dispatcher *assistant.Dispatcher, maxTurns int, in io.Reader, out io.Writer) error {
	session := assistant.NewSession("")
	fmt.Fprintln(out, banner)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nyou> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "reset":
			session.Reset()
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		}

		reply := dispatcher.HandleUserMessage(ctx, session, text)
		session.Trim(maxTurns)
		fmt.Fprintf(out, "\nassistant> %s\n", reply.Text)
	}
}
