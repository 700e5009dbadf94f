package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"methods_book/book"
	"methods_book/generator"
	"methods_book/server"
	"methods_book/texlog"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	rootFlag := flag.String("root", "methods-book", "root directory for the project")
	configPath := flag.String("config", "config/config.json", "path to config.json")
	withOpenAI := flag.Bool("with-openai", false, "use OpenAI to plan sections and the Batch API to generate examples")
	scanLog := flag.String("scan-log", "", "path to a LaTeX log to scan for problem regions")
	runLaTeX := flag.Bool("run-latex", false, "run pdflatex first and scan its output")
	contextLines := flag.Int("context", 10, "context lines captured around each error")
	applyFixes := flag.Bool("fix", false, "apply LLM fixes to previously scanned regions")
	serve := flag.Bool("serve", false, "start the review web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable debug logs")
	flag.Parse()

	logger := log.Default()

	cfg, err := generator.LoadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	root, err := filepath.Abs(*rootFlag)
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()

	switch {
	case *serve:
		srv, err := server.New(root, book.DefaultThemes, logger)
		if err != nil {
			fatal(err)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Printf("starting review server on %s", listen)
		fatal(http.ListenAndServe(listen, srv.Routes()))

	case *scanLog != "" || *runLaTeX:
		runScan(root, *scanLog, *runLaTeX, *contextLines, logger)

	case *applyFixes:
		runFix(ctx, root, cfg, logger)

	default:
		runInit(ctx, root, cfg, *withOpenAI, logger)
	}
}

// runInit scaffolds the project and, when enabled, drives the three-phase
// content pipeline: section plans, batched example generation, chapter
// assembly. Without a client the chapters come out as stubs.
func runInit(ctx context.Context, root string, cfg generator.Config, withOpenAI bool, logger *log.Logger) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}
	log.Printf("[INFO] project root: %s", root)

	if err := book.Scaffold(root, logger); err != nil {
		fatal(err)
	}

	if err := generateThemes(ctx, root, cfg, withOpenAI, logger); err != nil {
		fatal(err)
	}

	log.Printf("[DONE] skeleton created")
	log.Printf("next steps:")
	log.Printf("  - cd %s and run `make` or `pdflatex main.tex`", root)
	log.Printf("  - inspect themes/ for generated chapters")
	log.Printf("  - use plans/ JSON files for further refinement")
}

func generateThemes(ctx context.Context, root string, cfg generator.Config, withOpenAI bool, logger *log.Logger) error {
	if !withOpenAI {
		log.Printf("[INFO] OpenAI disabled; writing simple stub chapters")
		return book.WriteStubThemes(root, book.DefaultThemes, logger)
	}

	client, err := generator.NewClientFromConfig(cfg, logger)
	if err != nil {
		return err
	}
	if client == nil {
		log.Printf("[INFO] no client; falling back to stub chapters")
		return book.WriteStubThemes(root, book.DefaultThemes, logger)
	}

	log.Printf("[INFO] === phase 1: generating / loading section plans ===")
	planner := &generator.Planner{Client: client, Model: cfg.Model, Logger: logger}
	plans, err := planner.GeneratePlans(ctx, root, book.DefaultThemes)
	if err != nil {
		return err
	}

	log.Printf("[INFO] === phase 2: batch examples (inquiry + solution) ===")
	runner := &generator.BatchRunner{
		Client:       client,
		Model:        cfg.Model,
		MaxRounds:    cfg.MaxRounds,
		PollInterval: 10 * time.Second,
		Logger:       logger,
		Verbose:      verbose,
	}
	outputs, err := runner.Run(ctx, root, book.DefaultThemes, plans)
	if err != nil {
		return err
	}

	log.Printf("[INFO] === phase 3: assembling LaTeX themed chapters ===")
	return book.AssembleThemes(root, book.DefaultThemes, plans, outputs, logger)
}

// runScan parses a LaTeX log (optionally produced by running pdflatex
// right now) into the line-delimited region store under logs/.
func runScan(root, scanLog string, runBuild bool, contextLines int, logger *log.Logger) {
	logsDir := filepath.Join(root, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		fatal(err)
	}

	var logText string
	if runBuild {
		out, err := texlog.RunLaTeX(root, logger)
		if err != nil {
			fatal(err)
		}
		logText = out
		logPath := filepath.Join(logsDir, "latex_errors.log")
		if err := os.WriteFile(logPath, []byte(logText), 0o644); err != nil {
			fatal(err)
		}
		log.Printf("[INFO] LaTeX log saved to %s", logPath)
	} else {
		data, err := os.ReadFile(scanLog)
		if err != nil {
			fatal(err)
		}
		logText = string(data)
	}

	regions := texlog.CollectProblemRegions(logText, root, contextLines, logger)
	regionsPath := filepath.Join(logsDir, "latex_problem_regions.jsonl")
	if err := texlog.WriteRegions(regionsPath, regions); err != nil {
		fatal(err)
	}
	log.Printf("[INFO] found %d problematic regions", len(regions))
	log.Printf("[INFO] saved to %s", regionsPath)
}

// runFix loads the region store and patches each region in place with a
// model-proposed fix.
func runFix(ctx context.Context, root string, cfg generator.Config, logger *log.Logger) {
	client, err := generator.NewClientFromConfig(cfg, logger)
	if err != nil {
		fatal(err)
	}
	if client == nil {
		fatal(fmt.Errorf("--fix requires an API key (set OPENAI_API_KEY or llm.api_key)"))
	}

	regionsPath := filepath.Join(root, "logs", "latex_problem_regions.jsonl")
	regions, err := texlog.LoadRegions(regionsPath)
	if err != nil {
		fatal(err)
	}
	if len(regions) == 0 {
		log.Printf("[INFO] no regions found in %s", regionsPath)
		return
	}

	fixer := generator.NewRegionFixer(ctx, client, cfg.FixModel)
	if err := texlog.ApplyFixesToFiles(regions, fixer, root, logger); err != nil {
		fatal(err)
	}
	log.Printf("[INFO] applied fixes for %d regions; rebuild and re-scan to verify", len(regions))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
