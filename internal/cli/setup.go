package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/reel/internal/adapter"
)

const verifyTimeout = 15 * time.Second

func newSetupCmd(opts *options) *cobra.Command {
	var apiKey string
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Save your TMDB API key",
		Long: `Setup stores a TMDB v3 API key or v4 read access token in the config
file. The key is checked against TMDB before it is saved unless
--no-verify is given. Without --api-key the key is read from the
terminal without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			return runSetup(cmd, opts.configPath, cfg, logger, apiKey, !noVerify)
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "TMDB API key or read access token (prompted when omitted)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "save without checking the key against TMDB")
	return cmd
}

// runSetup stores credentials in cfg and writes it to path. An empty key
// is prompted for on the command's input.
func runSetup(cmd *cobra.Command, path string, cfg *adapter.Config, logger *slog.Logger, key string, verify bool) error {
	out := cmd.OutOrStdout()

	if key == "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Welcome to Reel!")
		fmt.Fprintln(out, "Reel needs a TMDB API key: https://www.themoviedb.org/settings/api")
		fmt.Fprintln(out)

		var err error
		key, err = promptSecret(cmd.InOrStdin(), out, "API key or read access token: ")
		if err != nil {
			return err
		}
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}

	if looksLikeAccessToken(key) {
		cfg.TMDB.AccessToken = key
		cfg.TMDB.APIKey = ""
	} else {
		cfg.TMDB.APIKey = key
		cfg.TMDB.AccessToken = ""
	}

	if verify {
		fmt.Fprintln(out, "Checking key...")
		ctx, cancel := context.WithTimeout(cmd.Context(), verifyTimeout)
		defer cancel()
		if _, err := newClient(cfg, logger).PopularMovies(ctx, 1); err != nil {
			return fmt.Errorf("failed to verify key: %w", err)
		}
		fmt.Fprintln(out, "✓ Key accepted")
	}

	if err := adapter.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if path == "" {
		path = adapter.DefaultConfigFile()
	}
	logger.Info("saved TMDB credentials", "path", path)
	fmt.Fprintf(out, "✓ Configuration saved to %s\n", path)
	return nil
}

// looksLikeAccessToken reports whether key is a v4 read access token.
// Those are JWTs; v3 keys are 32 hex characters.
func looksLikeAccessToken(key string) bool {
	return strings.Count(key, ".") == 2 && len(key) > 64
}

// promptSecret reads one line from in, without echo when in is a terminal
func promptSecret(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
