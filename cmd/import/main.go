package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/wolfman30/doctor-finder/internal/app/bootstrap"
	appconfig "github.com/wolfman30/doctor-finder/internal/config"
	"github.com/wolfman30/doctor-finder/internal/doctors"
	"github.com/wolfman30/doctor-finder/internal/ingest"
	"github.com/wolfman30/doctor-finder/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	dir := flag.String("dir", "", "read source files from this directory instead of the configured source")
	flag.Parse()
	if *dir != "" {
		cfg.DataBucket = ""
		cfg.DataDir = *dir
	}

	logger := logging.NewWithWriter(cfg.LogLevel, "text", os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, out io.Writer) error {
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
	report, err := ingest.NewImporter(store, nil, logger).Import(ctx, source)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d doctors from %s (%d files, %d failed)\n\n",
		report.Inserted, report.Source, len(report.Files), report.Failed())
	for _, f := range report.Files {
		if f.Err != nil {
			fmt.Fprintf(out, "  skipped %s: %v\n", f.Name, f.Err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPECIALTY\tCITY\tDOCTORS")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Specialty, s.City, s.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	top, err := doctors.NewSearcher(store, nil, logger).Search(ctx, doctors.SearchParams{
		Specialty: doctors.SpecialtyPsychiatrist,
		City:      doctors.CityIslamabad,
		Limit:     3,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTop %d Psychiatrists in Islamabad:\n", len(top))
	for i, d := range top {
		fmt.Fprintf(out, "  %d. %s (%s, %d reviews, fee PKR %d)\n", i+1, d.Name, d.Experience, d.Reviews, d.Fee)
	}
	return nil
}
