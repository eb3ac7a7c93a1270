package adapter

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoURL is returned when there is nothing to open
var ErrNoURL = errors.New("no url to open")

// Launcher opens trailer and web URLs in an external program
type Launcher struct {
	command string   // configured player command, empty for system default
	args    []string // additional arguments for the player
	logger  *slog.Logger

	// start runs a prepared command without waiting for it
	start func(cmd *exec.Cmd) error
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: strings.TrimSpace(command),
		args:    args,
		logger:  logger,
		start:   func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// PlayTrailer opens a video URL in the configured player, falling back
// to the system default handler (usually the browser).
func (l *Launcher) PlayTrailer(url string) error {
	if url == "" {
		return ErrNoURL
	}
	if l.command == "" {
		return l.OpenURL(url)
	}

	cmd := l.playerCommand(url)
	l.logger.Info("launching player", "command", cmd.Path, "args", cmd.Args[1:])
	if err := l.start(cmd); err != nil {
		l.logger.Warn("player launch failed, using system default", "command", l.command, "error", err)
		return l.OpenURL(url)
	}
	return nil
}

// OpenURL opens a URL using the system default handler
func (l *Launcher) OpenURL(url string) error {
	if url == "" {
		return ErrNoURL
	}
	cmd := defaultOpenCommand(runtime.GOOS, url)
	l.logger.Info("launching with system default", "os", runtime.GOOS, "url", url)
	return l.start(cmd)
}

// playerCommand builds the configured player invocation. On macOS a GUI
// app that is not on PATH is started through 'open -a'.
func (l *Launcher) playerCommand(url string) *exec.Cmd {
	args := append([]string{}, l.args...)

	if runtime.GOOS == "darwin" {
		if _, err := exec.LookPath(l.command); err != nil {
			cmdArgs := []string{"-a", l.command}
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			cmdArgs = append(cmdArgs, url)
			return exec.Command("open", cmdArgs...)
		}
	}

	// For direct command execution, URL goes at the end
	args = append(args, url)
	return exec.Command(l.command, args...)
}

// defaultOpenCommand returns the platform's "open this URL" command
func defaultOpenCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", url)
	}
}
