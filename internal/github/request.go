package github

import (
	"errors"
	"strings"
)

// TokenPrefix is the only personal access token format accepted.
const TokenPrefix = "ghp_"

var (
	ErrMissingFields = errors.New("github: token, repo, path and message are required")
	ErrInvalidToken  = errors.New("github: token must start with " + TokenPrefix)
	ErrInvalidRepo   = errors.New("github: repo must be owner/name")
)

// Request is one publish attempt built from the form.
type Request struct {
	Token   string `json:"token"`
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Trimmed returns r with surrounding whitespace removed from every field.
func (r Request) Trimmed() Request {
	return Request{
		Token:   strings.TrimSpace(r.Token),
		Repo:    strings.TrimSpace(r.Repo),
		Path:    strings.TrimSpace(r.Path),
		Message: strings.TrimSpace(r.Message),
	}
}

// Validate checks r in order: all fields present, token prefix, repo form.
// It returns the owner and repository name on success.
func (r Request) Validate() (owner, name string, err error) {
	if r.Token == "" || r.Repo == "" || r.Path == "" || r.Message == "" {
		return "", "", ErrMissingFields
	}
	if !strings.HasPrefix(r.Token, TokenPrefix) {
		return "", "", ErrInvalidToken
	}
	owner, name, ok := strings.Cut(r.Repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", ErrInvalidRepo
	}
	return owner, name, nil
}
