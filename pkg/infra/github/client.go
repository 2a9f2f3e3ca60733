package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/oauth2"
)

const (
	DefaultPerPage = 100
	maxPerPage     = 100
)

// Client is an authenticated GitHub REST client. It holds no per-request state and is safe to reuse
// for every call of a run.
type Client struct {
	gh      *gogithub.Client
	perPage int
}

var _ interfaces.GitHub = (*Client)(nil)

type config struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	perPage   int
	transport http.RoundTripper
}

type Option func(*config)

// WithBaseURL replaces https://api.github.com/ (GitHub Enterprise Server or test servers)
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets a deadline for each HTTP exchange including reading its body. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

func WithPerPage(n int) Option {
	return func(c *config) {
		c.perPage = n
	}
}

// WithTransport replaces the underlying round tripper. Authorization is still added on top of it.
func WithTransport(tr http.RoundTripper) Option {
	return func(c *config) {
		c.transport = tr
	}
}

// New builds the client. It fails with types.ErrConfiguration before any network call when the
// credential cannot be sent as a header value.
func New(token types.GitHubToken, options ...Option) (*Client, error) {
	cfg := &config{
		userAgent: types.DefaultUserAgent(),
		perPage:   DefaultPerPage,
	}
	for _, opt := range options {
		opt(cfg)
	}

	if token == "" {
		return nil, goerr.Wrap(types.ErrConfiguration, "GitHub token is empty")
	}
	if !httpguts.ValidHeaderFieldValue("token " + string(token)) {
		return nil, goerr.Wrap(types.ErrConfiguration, "GitHub token is not a valid header value")
	}
	if cfg.perPage <= 0 || cfg.perPage > maxPerPage {
		return nil, goerr.Wrap(types.ErrInvalidOption, "per page must be between 1 and 100", goerr.V("per_page", cfg.perPage))
	}

	// oauth2.NewClient inherits Timeout and Transport from the client stored in the context
	base := &http.Client{
		Timeout:   cfg.timeout,
		Transport: cfg.transport,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: string(token),
		TokenType:   "token",
	})

	gh := gogithub.NewClient(oauth2.NewClient(ctx, src))
	gh.UserAgent = cfg.userAgent
	// Every call reaches the server; a rejected call surfaces as its real status.
	gh.DisableRateLimitCheck = true

	if cfg.baseURL != "" {
		u, err := url.Parse(cfg.baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub base URL", goerr.V("base_url", cfg.baseURL))
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		gh.BaseURL = u
	}

	return &Client{
		gh:      gh,
		perPage: cfg.perPage,
	}, nil
}

// ListRepositories walks the listing pages of the owner, most recently updated first, until a page
// comes back empty. Any failure discards the pages fetched so far.
func (x *Client) ListRepositories(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error) {
	var repos []*model.Repository

	for page := 1; ; page++ {
		items, err := x.listPage(ctx, owner, ownerType, page)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list repositories",
				goerr.V("owner", owner),
				goerr.V("owner_type", ownerType.String()),
				goerr.V("page", page),
			)
		}

		logging.From(ctx).Debug("Fetched repository page",
			slog.Int("page", page),
			slog.Int("count", len(items)),
		)

		if len(items) == 0 {
			break
		}
		repos = append(repos, items...)
	}

	return repos, nil
}

func (x *Client) listPage(ctx context.Context, owner string, ownerType types.OwnerType, page int) ([]*model.Repository, error) {
	q := url.Values{}
	q.Set("per_page", fmt.Sprintf("%d", x.perPage))
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("sort", "updated")
	q.Set("direction", "desc")
	u := fmt.Sprintf("%s/%s/repos?%s", ownerType.Scope(), url.PathEscape(owner), q.Encode())

	req, err := x.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build listing request")
	}

	resp, err := x.gh.BareDo(ctx, req)
	if err != nil {
		return nil, toAPIError(err, resp, "")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read listing page")
	}
	return decodePage(body)
}

// decodePage accepts only a JSON array of valid repositories. `null`, objects and trailing data
// are decode errors.
func decodePage(body []byte) ([]*model.Repository, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, goerr.Wrap(types.ErrDecode, "listing page is not an array of repositories",
			goerr.V("body", truncate(trimmed, 64)))
	}

	var items []*model.Repository
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, goerr.Wrap(types.ErrDecode, "listing page is not an array of repositories", goerr.V("error", err.Error()))
	}
	for _, item := range items {
		if item == nil {
			return nil, goerr.Wrap(types.ErrDecode, "listing page has a null entry")
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return items, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

// OpenArchive requests the zipball of the ref and returns its body. Redirects to the download host
// are followed. The caller must close the returned reader.
func (x *Client) OpenArchive(ctx context.Context, input *interfaces.OpenArchiveInput) (io.ReadCloser, error) {
	fullName := input.Owner + "/" + input.Repo
	u := fmt.Sprintf("repos/%s/%s/zipball/%s",
		url.PathEscape(input.Owner),
		url.PathEscape(input.Repo),
		escapeRef(input.Ref),
	)

	req, err := x.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build archive request", goerr.V("repo", fullName))
	}

	resp, err := x.gh.BareDo(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(toAPIError(err, resp, fullName), "failed to open archive",
			goerr.V("repo", fullName),
			goerr.V("ref", input.Ref),
		)
	}

	return resp.Body, nil
}

// toAPIError converts a go-github failure that carries a response into *types.APIError. Failures
// without a response (transport, cancellation) are returned as is.
func toAPIError(err error, resp *gogithub.Response, repo string) error {
	if resp == nil || resp.Response == nil {
		return err
	}

	var accepted *gogithub.AcceptedError
	if errors.As(err, &accepted) || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return goerr.Wrap(&types.APIError{StatusCode: resp.StatusCode, Repo: repo}, "GitHub API returned non-success status",
			goerr.V("status", resp.StatusCode),
			goerr.V("detail", err.Error()),
		)
	}
	return err
}

// escapeRef escapes each segment of a ref so that branch names containing '/' keep their separators.
func escapeRef(ref types.BranchName) string {
	parts := strings.Split(string(ref), "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return strings.Join(parts, "/")
}
