package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/shaun/quotewidget/internal/logger"
	"github.com/shaun/quotewidget/internal/quote"
)

// Client commits quotes to a repository through the contents API.
type Client struct {
	hc      *http.Client // optional; for tests
	baseURL string       // optional; GitHub Enterprise or tests
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the client whose transport carries API calls (e.g. in tests).
// The token is still attached on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithBaseURL points the client at another API root, e.g. https://ghe.example.com/api/v3/.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout bounds each API call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.log == nil {
		c.log = logger.Discard()
	}
	return c
}

// Result describes a successful write.
type Result struct {
	Created bool   // false when an existing file was updated
	SHA     string // blob sha of the written content, when reported
}

func (c *Client) apiClient(token string) (*github.Client, error) {
	var base http.RoundTripper
	if c.hc != nil {
		base = c.hc.Transport
	}
	// TokenType "token" yields the classic "Authorization: token ghp_..." header.
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "token"})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: ts, Base: base},
		Timeout:   c.timeout,
	}
	client := github.NewClient(httpClient)
	if c.baseURL != "" {
		raw := c.baseURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("github: base url: %w", err)
		}
		client.BaseURL = u
	}
	return client, nil
}

// Publish validates req, looks up the current sha of req.Path and writes q
// there, creating the file when it does not exist yet. It never retries.
func (c *Client) Publish(ctx context.Context, req Request, q quote.Quote) (*Result, error) {
	owner, repo, err := req.Validate()
	if err != nil {
		return nil, err
	}
	client, err := c.apiClient(req.Token)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(req.Message),
		Content: []byte(q.FileContent()),
	}
	existing, _, _, err := client.Repositories.GetContents(ctx, owner, repo, req.Path, nil)
	switch {
	case err != nil && isNotFound(err):
		c.log.Debug("file does not exist yet, will create", "repo", req.Repo, "path", req.Path)
	case err != nil:
		c.log.Debug("contents lookup failed, will create", "repo", req.Repo, "path", req.Path, "err", err)
	case existing != nil && existing.SHA != nil:
		opts.SHA = existing.SHA
	}

	var resp *github.RepositoryContentResponse
	if opts.SHA == nil {
		resp, _, err = client.Repositories.CreateFile(ctx, owner, repo, req.Path, opts)
	} else {
		resp, _, err = client.Repositories.UpdateFile(ctx, owner, repo, req.Path, opts)
	}
	if err != nil {
		if ae := apiError(err); ae != nil {
			return nil, ae
		}
		return nil, fmt.Errorf("github: write %s: %w", req.Path, err)
	}
	res := &Result{Created: opts.SHA == nil}
	if resp != nil && resp.Content != nil {
		res.SHA = resp.Content.GetSHA()
	}
	c.log.Info("quote pushed", "repo", req.Repo, "path", req.Path, "created", res.Created)
	return res, nil
}
