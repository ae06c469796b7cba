// Package main implements the trivia command, a terminal quiz whose
// questions are generated by the Gemini API.
//
// Usage:
//
//	trivia [flags]              play a quiz
//	trivia [flags] ask [prompt] send one prompt and show the reply
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/phrazzld/scry-trivia/internal/config"
	"github.com/phrazzld/scry-trivia/internal/platform/logger"
)

// command is a parsed command line.
type command struct {
	name   string // "quiz" or "ask"
	prompt string // ask only; empty means the configured prompt
	flags  *pflag.FlagSet
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "trivia: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run parses args, wires the application and runs the selected screen until
// the player quits.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	cmd, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := config.Load(cmd.flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return fmt.Errorf("%w: set SCRY_LLM_GEMINI_API_KEY or GEMINI_API_KEY", err)
	}

	log, closer, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer func() { _ = closer.Close() }()

	log.InfoContext(ctx, "configuration loaded",
		"command", cmd.name,
		"model", cfg.LLM.ModelName,
		"question_count", cfg.Quiz.QuestionCount,
		"topic", cfg.Quiz.Topic,
		"log_level", cfg.Log.Level)

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	var model tea.Model
	switch cmd.name {
	case "ask":
		model, err = app.askModel(ctx, cmd.prompt)
	default:
		model, err = app.quizModel(ctx)
	}
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}

	log.InfoContext(ctx, "exiting")
	return nil
}

// parseArgs parses flags and the optional subcommand.
func parseArgs(args []string, stderr io.Writer) (*command, error) {
	fs := pflag.NewFlagSet("trivia", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: trivia [flags]\n       trivia [flags] ask [prompt...]\n\nFlags:")
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()
	cmd := &command{name: "quiz", flags: fs}
	if len(rest) == 0 {
		return cmd, nil
	}

	switch rest[0] {
	case "quiz":
		if len(rest) > 1 {
			return nil, fmt.Errorf("quiz takes no arguments, got %q", strings.Join(rest[1:], " "))
		}
	case "ask":
		cmd.name = "ask"
		cmd.prompt = strings.TrimSpace(strings.Join(rest[1:], " "))
	default:
		return nil, fmt.Errorf("unknown command %q", rest[0])
	}
	return cmd, nil
}
