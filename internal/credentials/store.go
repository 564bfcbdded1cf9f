// Package credentials persists provider API keys so a credential can be
// selected at runtime instead of baked into the environment.
package credentials

import (
	"context"
	"errors"
	"strings"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/infra"
)

// ProviderGateway names the generation backend credential slot.
const ProviderGateway = "gateway"

const (
	qSelectToken = `SELECT token FROM provider_credentials WHERE provider = $1 AND selected`

	qUpsertToken = `INSERT INTO provider_credentials (provider, token, selected, updated_at)
VALUES ($1, $2, TRUE, NOW())
ON CONFLICT (provider) DO UPDATE SET token = EXCLUDED.token, selected = TRUE, updated_at = NOW()`

	qDeselectToken = `UPDATE provider_credentials SET selected = FALSE, updated_at = NOW() WHERE provider = $1`
)

// Store reads and writes provider credentials through a SQL executor.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// Token returns the selected credential for a provider, or "" when none is
// selected.
func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, qSelectToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// Select stores a credential for the provider and marks it selected.
func (s *Store) Select(ctx context.Context, provider, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("credentials: token is required")
	}
	_, err := s.sql.Exec(ctx, qUpsertToken, provider, token)
	return err
}

// Deselect clears the selection without deleting the stored credential.
func (s *Store) Deselect(ctx context.Context, provider string) error {
	_, err := s.sql.Exec(ctx, qDeselectToken, provider)
	return err
}
