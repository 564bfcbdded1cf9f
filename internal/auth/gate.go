// Package auth gates every paid generation call on a selected credential.
// Requesting authorization is side-effecting and not guaranteed to
// succeed; callers must re-check instead of assuming it did.
package auth

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/credentials"
)

// Gate answers whether a credential is currently selected.
type Gate interface {
	IsAuthorized(ctx context.Context) (bool, error)
	RequestAuthorization(ctx context.Context) error
}

// StaticGate is backed by a fixed key from the environment. It cannot
// acquire a credential at runtime, so RequestAuthorization only logs.
type StaticGate struct {
	key    string
	logger zerolog.Logger
}

func NewStaticGate(key string, logger zerolog.Logger) *StaticGate {
	return &StaticGate{key: key, logger: logger}
}

func (g *StaticGate) IsAuthorized(ctx context.Context) (bool, error) {
	return g.key != "", nil
}

func (g *StaticGate) RequestAuthorization(ctx context.Context) error {
	g.logger.Warn().Msg("auth: credential selection requested but no credential source is configured")
	return nil
}

// StoreGate consults the credential store on every check, so a credential
// selected mid-session takes effect without a restart.
type StoreGate struct {
	store    *credentials.Store
	provider string
	logger   zerolog.Logger

	requestedAt atomic.Int64
}

func NewStoreGate(store *credentials.Store, provider string, logger zerolog.Logger) *StoreGate {
	return &StoreGate{store: store, provider: provider, logger: logger}
}

func (g *StoreGate) IsAuthorized(ctx context.Context) (bool, error) {
	token, err := g.store.Token(ctx, g.provider)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// RequestAuthorization records that a selection was asked for. The actual
// selection happens out of band (the credentials endpoint); the outcome is
// not guaranteed.
func (g *StoreGate) RequestAuthorization(ctx context.Context) error {
	g.requestedAt.Store(time.Now().Unix())
	g.logger.Info().Str("provider", g.provider).Msg("auth: credential selection requested")
	return nil
}

// LastRequested returns when a selection was last requested, zero if never.
func (g *StoreGate) LastRequested() time.Time {
	ts := g.requestedAt.Load()
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

var (
	_ Gate = (*StaticGate)(nil)
	_ Gate = (*StoreGate)(nil)
)
