package providers

import (
	"database/sql"
	"fmt"
)

type DBHelper struct {
	PostgresClient *sql.DB
}

func NewDbProvider(postgresDBClient *sql.DB) (*DBHelper, error) {
	if postgresDBClient == nil {
		return nil, fmt.Errorf("invalid postgres client: nil pointer provided")
	}
	if err := postgresDBClient.Ping(); err != nil {
		return nil, fmt.Errorf("postgres client not reachable: %w", err)
	}
	return &DBHelper{PostgresClient: postgresDBClient}, nil
}
