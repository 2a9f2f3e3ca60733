package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

type GitHub struct {
	token   types.GitHubToken `masq:"secret"`
	baseURL string
	timeout time.Duration
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub personal access token",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("OCTOBAK_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise Server)",
			Category:    "GitHub",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("OCTOBAK_GITHUB_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Deadline of each GitHub request including its body, 0 disables it",
			Category:    "GitHub",
			Destination: &x.timeout,
			Sources:     cli.EnvVars("OCTOBAK_TIMEOUT"),
		},
	}
}

// New builds the GitHub client. It fails with types.ErrConfiguration when no usable token is given.
func (x GitHub) New() (*github.Client, error) {
	options := []github.Option{
		github.WithTimeout(x.timeout),
	}
	if x.baseURL != "" {
		options = append(options, github.WithBaseURL(x.baseURL))
	}

	return github.New(x.token, options...)
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("Token.len", len(x.token)),
		slog.String("BaseURL", x.baseURL),
		slog.Duration("Timeout", x.timeout),
	)
}
