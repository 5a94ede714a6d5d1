package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/noah-isme/greatday-recap-api/internal/app"
	"github.com/noah-isme/greatday-recap-api/internal/service"
	"github.com/noah-isme/greatday-recap-api/pkg/config"
	"github.com/noah-isme/greatday-recap-api/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: recap <daily|weekly|monthly> [--force]")
	}

	args := os.Args[1:]
	if len(args) == 0 {
		flag.Usage()
		return 1
	}
	mode := args[0]

	fs := flag.NewFlagSet("recap", flag.ExitOnError)
	force := fs.Bool("force", false, "republish even if the window was already posted")
	_ = fs.Parse(args[1:])

	if mode != service.ModeDaily && mode != service.ModeWeekly && mode != service.ModeMonthly {
		flag.Usage()
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return 1
	}
	defer logr.Sync() //nolint:errcheck

	recapSvc, cleanup, err := app.BuildRecapService(cfg, logr, service.NewMetricsService())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running %s report: %v\n", mode, err)
		return 1
	}
	defer cleanup()

	ctx := context.Background()

	var result service.RunResult
	switch mode {
	case service.ModeDaily:
		result, err = recapSvc.RunDaily(ctx, *force)
	case service.ModeWeekly:
		result, err = recapSvc.RunWeekly(ctx, *force)
	default:
		result, err = recapSvc.RunMonthly(ctx, *force)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running %s report: %v\n", mode, err)
		return 1
	}

	if result.Skipped {
		fmt.Println(result.Reason)
	} else {
		fmt.Printf("Successfully posted %s report.\n", mode)
	}
	return 0
}
