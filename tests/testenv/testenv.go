// Package testenv builds a fully wired gateway for tests: in-memory
// credentials, a no-op engine sink and the real gin router. An optional
// Postgres-backed variant is available for environments that run one.
package testenv

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/izzydoesit/gemini-api/config"
	"github.com/izzydoesit/gemini-api/db/postgres"
	providers "github.com/izzydoesit/gemini-api/db/postgres/providers"
	"github.com/izzydoesit/gemini-api/models"
	"github.com/izzydoesit/gemini-api/repository"
	"github.com/izzydoesit/gemini-api/routes"
	"github.com/izzydoesit/gemini-api/service"

	_ "github.com/lib/pq"
)

// Issued test credentials, one per role.
const (
	TraderKey         = "ucSCx8mI7qpkH4XFecRX"
	TraderSecret      = "CvrG1JJEeUw3X6b3EzVAcUfM59J"
	FundManagerKey    = "fm-3kJx9mQpL2wRtY8vAz"
	FundManagerSecret = "fm-secret-Uw3X6b3EzVAc"
	AuditorKey        = "aud-7Hs2nVb5cXe1qWp4Tz"
	AuditorSecret     = "aud-secret-G1JJEeUw3X6"
)

type TestDeps struct {
	Gateway     *service.Gateway
	Router      *gin.Engine
	Credentials models.CredentialSet
	Cleanup     func()
}

// GetTestInstance wires a gateway against in-memory credentials and a no-op
// engine sink. Each call returns fresh nonce state.
func GetTestInstance() *TestDeps {
	gin.SetMode(gin.TestMode)

	credentials := models.CredentialSet{
		TraderKey:      {APIKey: TraderKey, Secret: []byte(TraderSecret), Role: models.RoleTrader},
		FundManagerKey: {APIKey: FundManagerKey, Secret: []byte(FundManagerSecret), Role: models.RoleFundManager},
		AuditorKey:     {APIKey: AuditorKey, Secret: []byte(AuditorSecret), Role: models.RoleAuditor},
	}

	decoder, err := service.NewPayloadDecoder(config.Default(), routes.NewOrderPath)
	if err != nil {
		log.Fatalf("failed to build payload decoder: %v", err)
	}

	dispatcher := service.NewEngineDispatcher(service.NopSink{}, zap.NewNop())
	gateway := service.NewGateway(credentials, decoder, dispatcher, zap.NewNop())

	router := gin.New()
	routes.RegisterRoutes(router, gateway)

	return &TestDeps{
		Gateway:     gateway,
		Router:      router,
		Credentials: credentials,
		Cleanup:     dispatcher.Close,
	}
}

// ConnectTestDB connects to the test PostgreSQL DB using TEST_POSTGRES_* env
// vars. Callers should skip when TEST_POSTGRES_HOST is unset.
func ConnectTestDB() (*postgres.Db, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("TEST_POSTGRES_HOST"),
		os.Getenv("TEST_POSTGRES_PORT"),
		os.Getenv("TEST_POSTGRES_USER"),
		os.Getenv("TEST_POSTGRES_PASSWORD"),
		os.Getenv("TEST_POSTGRES_DB"),
	)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to test PostgreSQL DB: %w", err)
	}
	return &postgres.Db{PostgresClient: db}, nil
}

// InitTestSchema applies the schema and seeds the trader credential the
// journal's foreign key needs.
func InitTestSchema(db *postgres.Db) error {
	content, err := os.ReadFile(filepath.Join("..", "..", "db", "postgres", "schema.sql"))
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := db.PostgresClient.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	_, err = db.PostgresClient.Exec(
		`INSERT INTO credentials (api_key, secret, role) VALUES ($1, $2, 'trader')
		 ON CONFLICT (api_key) DO NOTHING`,
		TraderKey, TraderSecret,
	)
	if err != nil {
		return fmt.Errorf("failed to seed test credential: %w", err)
	}
	return nil
}

// NewOrderRepository builds a journal repository against the test DB.
func NewOrderRepository(db *postgres.Db) (*repository.OrderRepository, error) {
	dbHelper, err := providers.NewDbProvider(db.PostgresClient)
	if err != nil {
		return nil, err
	}
	return repository.NewOrderRepository(dbHelper), nil
}
