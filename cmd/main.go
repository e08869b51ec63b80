package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexei-ozerov/whack/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"k8s.io/component-base/cli"
	"k8s.io/klog/v2"
)

type options struct {
	configPath string
	logPath    string
	tick       time.Duration
	seed       uint64
	headless   bool
}

/*
Runtime
*/

func main() {
	os.Exit(cli.Run(newCommand()))
}

func newCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "whack",
		Short: "Whack the moles before they hide again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&o.configPath, "config", "", "YAML level file; the built-in levels are used when empty")
	fs.StringVar(&o.logPath, "log-path", "whack.log", "file that receives the game log")
	fs.DurationVar(&o.tick, "tick", 16*time.Millisecond, "frame interval")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed, 0 picks one from the clock")
	fs.BoolVar(&o.headless, "headless", false, "play every level with a bot and print the scores")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlag(klogFlags.Lookup("v"))
	fs.AddGoFlag(klogFlags.Lookup("vmodule"))

	return cmd
}

func run(ctx context.Context, o *options) error {
	logFile, err := setupLogging(o.logPath)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logFile.Close()
	defer klog.Flush()

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.tick <= 0 {
		return fmt.Errorf("--tick must be positive, got %s", o.tick)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	d := newAppData(cfg, o.seed)
	klog.InfoS("Starting game", "levels", len(cfg.Levels), "seed", d.seed, "headless", o.headless)

	if o.headless {
		return d.runHeadless(ctx, o.tick, os.Stdout)
	}

	d.program = tea.NewProgram(newModel(d, o.tick), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := d.program.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func loadConfig(path string) (game.Config, error) {
	if path == "" {
		return game.DefaultConfig(), nil
	}
	return game.LoadConfig(path)
}

// setupLogging sends klog output to a file; the terminal belongs to the TUI.
func setupLogging(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	klog.LogToStderr(false)
	klog.SetOutput(f)
	return f, nil
}
