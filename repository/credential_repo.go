package repository

import (
	"context"
	"fmt"

	"github.com/izzydoesit/gemini-api/db/postgres/providers"
	"github.com/izzydoesit/gemini-api/models"
)

type CredentialRepository struct {
	DBHelper *providers.DBHelper
}

func NewCredentialRepository(db *providers.DBHelper) *CredentialRepository {
	return &CredentialRepository{DBHelper: db}
}

// LoadAll reads every issued credential into an in-memory set. The gateway
// treats the result as read-only; revocation means a restart or reload, not
// request-time mutation.
func (r *CredentialRepository) LoadAll(ctx context.Context) (models.CredentialSet, error) {
	query := `SELECT api_key, secret, role FROM credentials`
	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	defer rows.Close()

	set := make(models.CredentialSet)
	for rows.Next() {
		var apiKey, secret, role string
		if err := rows.Scan(&apiKey, &secret, &role); err != nil {
			return nil, fmt.Errorf("failed to scan credential row: %w", err)
		}
		set[apiKey] = models.Credential{
			APIKey: apiKey,
			Secret: []byte(secret),
			Role:   models.ParseRole(role),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading credentials: %w", err)
	}
	return set, nil
}
