// Package resolver turns client supplied article identifiers into canonical origin URLs.
package resolver

import (
	"fmt"
	"net/url"
	"strings"

	"thn-proxy/internal/domain"
)

// Resolver validates identifiers against a single origin.
// Implements domain.IdentifierResolver.
type Resolver struct {
	base *url.URL
	host string
}

// New creates a Resolver for the origin at baseURL (scheme and host, path ignored).
func New(baseURL string) (*Resolver, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid origin base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("origin base url must be http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("origin base url has no host: %q", baseURL)
	}

	base := &url.URL{Scheme: strings.ToLower(u.Scheme), Host: strings.ToLower(u.Host), Path: "/"}
	return &Resolver{base: base, host: base.Host}, nil
}

// Host returns the only host identifiers may resolve to.
func (r *Resolver) Host() string {
	return r.host
}

// Resolve returns the canonical URL for id.
// Accepted forms are an absolute http(s) URL on the origin host, a protocol relative URL,
// and a path with or without the leading slash.
func (r *Resolver) Resolve(id string) (string, error) {
	raw := strings.TrimSpace(id)
	if raw == "" {
		return "", domain.NewInputError(domain.ErrMissingParameter, "Missing id")
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", r.invalid()
		}
		return r.canonical(u)
	case strings.HasPrefix(raw, "//"):
		u, err := url.Parse(r.base.Scheme + ":" + raw)
		if err != nil {
			return "", r.invalid()
		}
		return r.canonical(u)
	case strings.Contains(raw, "://"):
		return "", r.invalid()
	}

	if u, err := url.Parse(raw); err != nil || u.Scheme != "" {
		return "", r.invalid()
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	ref, err := url.Parse(raw)
	if err != nil || ref.Scheme != "" || ref.Host != "" {
		return "", r.invalid()
	}
	return r.canonical(r.base.ResolveReference(ref))
}

func (r *Resolver) canonical(u *url.URL) (string, error) {
	if !strings.EqualFold(u.Host, r.host) {
		return "", domain.NewInputError(domain.ErrInvalidHost,
			fmt.Sprintf("Only %s URLs are allowed", r.host))
	}
	if u.User != nil {
		return "", r.invalid()
	}

	out := *u
	out.Scheme = strings.ToLower(out.Scheme)
	out.Host = strings.ToLower(out.Host)
	out.Fragment = ""
	out.RawFragment = ""
	if out.Path == "" {
		out.Path = "/"
	}
	return out.String(), nil
}

func (r *Resolver) invalid() error {
	return domain.NewInputError(domain.ErrInvalidIdentifier, "Invalid id")
}
