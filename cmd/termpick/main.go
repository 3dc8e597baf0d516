package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"termpick/internal/config"
	"termpick/internal/screen"
)

const version = "0.3.0"

// Exit statuses besides 0 (selection made) and 1 (error)
const (
	exitUnrecognized = 2
	exitCancelled    = 130
)

// exitStatus ends the program with a specific status
type exitStatus struct {
	code   int
	reason string
}

func (e *exitStatus) Error() string {
	return e.reason
}

var errCancelled = &exitStatus{code: exitCancelled}

// app is the state shared by all commands
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	logFile io.Closer
	stderr  *messages

	configPath string
	logPath    string
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	a := &app{
		log:    slog.New(slog.DiscardHandler),
		stderr: newMessages(os.Stderr),
	}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}

	var status *exitStatus
	if errors.As(err, &status) {
		if status.reason != "" {
			a.stderr.Warning(status.reason)
		}
		return status.code
	}
	if errors.Is(err, screen.ErrTooSmall) {
		a.stderr.Error("Terminal screen too small")
		a.log.Error("terminal check failed", "err", err)
		return 1
	}

	a.stderr.Error(err.Error())
	a.log.Error("command failed", "err", err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "termpick",
		Short: "Pick an item from a list, right in the terminal",
		Long: `termpick shows an inline menu at the cursor and prints the chosen item.

Items come from arguments, a saved list (--list), a directory (--dir),
a file (--file) or lines piped to stdin.

Exit status: 0 when an item was chosen, 130 when the menu was quit,
2 for an unrecognized key in a numbered menu, 1 on errors.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/termpick/config.yaml)")
	root.PersistentFlags().StringVar(&a.logPath, "log-file", "", "write debug logs to this file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every key and redraw")

	root.AddCommand(
		newSelectCmd(a),
		newFilterCmd(a),
		newNumberedCmd(a),
		newListsCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the config and opens the log file
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logPath := a.logPath
	if logPath == "" {
		logPath = a.cfg.LogFile
	}
	if logPath == "" {
		return nil
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logFile = f
	a.log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})).With("pid", os.Getpid())
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "termpick version %s\n", version)
		},
	}
}

// messages prints styled notices for the user
type messages struct {
	w     io.Writer
	error lipgloss.Style
	warn  lipgloss.Style
	dim   lipgloss.Style
}

func newMessages(w io.Writer) *messages {
	r := lipgloss.NewRenderer(w)
	return &messages{
		w:     w,
		error: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}),
		dim:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

func (m *messages) Error(msg string) {
	fmt.Fprintf(m.w, "%s %s\n", m.error.Render("Error:"), msg)
}

func (m *messages) Warning(msg string) {
	fmt.Fprintln(m.w, m.warn.Render(msg))
}

func (m *messages) Hint(msg string) {
	fmt.Fprintln(m.w, m.dim.Render(msg))
}
