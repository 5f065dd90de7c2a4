package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/johnwards/onboard/internal/config"
)

// ErrUnauthenticated is returned by resolvers that cannot identify the caller.
var ErrUnauthenticated = errors.New("unauthenticated")

// Caller is the authenticated user behind a request.
type Caller struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Name returns the display name, falling back to the email address.
func (c Caller) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Email
}

// IdentityResolver identifies the caller of a request.
type IdentityResolver interface {
	Resolve(r *http.Request) (Caller, error)
}

const callerKey contextKey = iota + 1

// CallerFrom returns the caller stored by the Auth middleware.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok
}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// TokenResolver authenticates static bearer tokens.
type TokenResolver struct {
	callers map[string]Caller
}

// NewTokenResolver creates a TokenResolver for the configured tokens.
func NewTokenResolver(tokens []config.AuthToken) *TokenResolver {
	callers := make(map[string]Caller, len(tokens))
	for _, t := range tokens {
		callers[t.Token] = Caller{Email: t.Email, DisplayName: t.DisplayName}
	}
	return &TokenResolver{callers: callers}
}

// Resolve implements IdentityResolver.
func (tr *TokenResolver) Resolve(r *http.Request) (Caller, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return Caller{}, ErrUnauthenticated
	}
	c, ok := tr.callers[strings.TrimSpace(token)]
	if !ok {
		return Caller{}, ErrUnauthenticated
	}
	return c, nil
}

// HeaderResolver trusts identity headers set by an authenticating proxy in
// front of the server.
type HeaderResolver struct {
	EmailHeader string
	NameHeader  string
}

// Resolve implements IdentityResolver.
func (hr HeaderResolver) Resolve(r *http.Request) (Caller, error) {
	email := strings.TrimSpace(r.Header.Get(hr.EmailHeader))
	if email == "" {
		return Caller{}, ErrUnauthenticated
	}
	c := Caller{Email: email}
	if hr.NameHeader != "" {
		c.DisplayName = strings.TrimSpace(r.Header.Get(hr.NameHeader))
	}
	return c, nil
}

// Resolvers tries each resolver in turn and returns the first caller found.
type Resolvers []IdentityResolver

// Resolve implements IdentityResolver.
func (rs Resolvers) Resolve(r *http.Request) (Caller, error) {
	for _, res := range rs {
		c, err := res.Resolve(r)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrUnauthenticated) {
			return Caller{}, err
		}
	}
	return Caller{}, ErrUnauthenticated
}

// ResolverFromConfig builds the resolver chain for cfg: configured bearer
// tokens first, then proxy headers when an identity header is named.
func ResolverFromConfig(cfg config.Config) IdentityResolver {
	var rs Resolvers
	if len(cfg.AuthTokens) > 0 {
		rs = append(rs, NewTokenResolver(cfg.AuthTokens))
	}
	if cfg.IdentityHeader != "" {
		rs = append(rs, HeaderResolver{EmailHeader: cfg.IdentityHeader, NameHeader: cfg.NameHeader})
	}
	return rs
}
