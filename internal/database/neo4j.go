package database

import (
	"context"
	"fmt"

	"scholar_assistant_go_backend/cmd/api/config"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const paperKeyConstraint = "CREATE CONSTRAINT paper_title_year IF NOT EXISTS FOR (p:Paper) REQUIRE (p.title, p.year) IS UNIQUE"

// NewNeo4jDriver opens the process-wide driver and checks the server is
// reachable. The caller closes it at shutdown.
func NewNeo4jDriver(ctx context.Context, cfg config.Neo4jConfig) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", cfg.URI, err)
	}
	return driver, nil
}

// EnsurePaperConstraint creates the (title, year) uniqueness constraint if it
// is missing.
func EnsurePaperConstraint(ctx context.Context, driver neo4j.DriverWithContext, database string) error {
	_, err := neo4j.ExecuteQuery(ctx, driver, paperKeyConstraint, nil,
		neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(database))
	if err != nil {
		return fmt.Errorf("failed to create paper constraint: %w", err)
	}
	return nil
}
