package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/planea/internal/config"
	"github.com/sant0-9/planea/internal/document"
	"github.com/sant0-9/planea/internal/llm"
	"github.com/sant0-9/planea/internal/logger"
	"github.com/sant0-9/planea/internal/planner"
	"github.com/sant0-9/planea/internal/tui"
	"github.com/sant0-9/planea/internal/web"
)

var version = "dev"

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "serve":
			runServe(args[1:])
			return
		case "init":
			runInit(args[1:])
			return
		}
	}
	runTUI(args)
}

func runTUI(args []string) {
	fs := flag.NewFlagSet("planea", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Parse(args)

	if *showVersion {
		fmt.Println("planea", version)
		return
	}

	cfg := loadConfig(*configPath)

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = config.DefaultLogFile()
	}
	log, err := logger.New(cfg.Log.Mode, logFile)
	if err != nil {
		fatal("logger: %v", err)
	}
	defer log.Sync()

	p, err := newPlanner(cfg, log)
	if err != nil {
		fatal("%v", err)
	}

	log.Info("starting terminal ui", "version", version, "provider", cfg.Provider, "model", cfg.Model)
	program := tea.NewProgram(tui.NewApp(cfg, p, log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error("terminal ui exited", "error", err)
		fatal("%v", err)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("planea serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml")
	addr := fs.String("addr", "", "override listen address")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.File)
	if err != nil {
		fatal("logger: %v", err)
	}
	defer log.Sync()

	p, err := newPlanner(cfg, log)
	if err != nil {
		log.Fatal("planner", "error", err)
	}

	s := web.NewServer(p, log)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("planea web listening", "addr", cfg.Server.Addr, "provider", cfg.Provider, "model", cfg.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", "error", err)
		}
	}()

	<-done
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
	s.Close() //nolint:errcheck
	log.Info("server stopped")
}

// runInit writes a starter config file, keeping an API key already present in
// the environment.
func runInit(args []string) {
	fs := flag.NewFlagSet("planea init", flag.ExitOnError)
	force := fs.Bool("force", false, "overwrite an existing config file")
	fs.Parse(args)

	path, err := config.ConfigPath()
	if err != nil {
		fatal("%v", err)
	}
	if config.Exists() && !*force {
		fatal("%s already exists (use -force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if env, err := config.Load(""); err == nil {
		cfg.APIKey = env.APIKey
	}
	if err := cfg.Save(); err != nil {
		fatal("save config: %v", err)
	}
	fmt.Println("config written to", path)
	if cfg.APIKey == "" {
		fmt.Println("set api_key there or export OPENROUTER_API_KEY before running planea")
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fatal("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fatal("%v: set OPENROUTER_API_KEY, or api_key in %s (see `planea init`)", err, configLocation(path))
		}
		fatal("config: %v", err)
	}
	return cfg
}

func configLocation(path string) string {
	if path != "" {
		return path
	}
	if p, err := config.ConfigPath(); err == nil {
		return p
	}
	return "config.yaml"
}

func newPlanner(cfg *config.Config, log *logger.Logger) (*planner.Planner, error) {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("provider: %w", err)
	}
	exporter := document.NewExporter(cfg.TempDir)
	return planner.New(provider, exporter, log, planner.Options{
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
	}), nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
