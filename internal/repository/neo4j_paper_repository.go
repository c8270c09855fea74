package repository

import (
	"context"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// cypherRunner executes a single statement in its own session.
type cypherRunner interface {
	Write(ctx context.Context, cypher string, params map[string]any) error
	Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	VerifyConnectivity(ctx context.Context) error
}

type sessionRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

func (r *sessionRunner) Write(ctx context.Context, cypher string, params map[string]any) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite, DatabaseName: r.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	return err
}

func (r *sessionRunner) Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead, DatabaseName: r.database})
	defer session.Close(ctx)

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return records.([]*neo4j.Record), nil
}

func (r *sessionRunner) VerifyConnectivity(ctx context.Context) error {
	return r.driver.VerifyConnectivity(ctx)
}

// Neo4jPaperRepository keeps papers as (:Paper) nodes.
type Neo4jPaperRepository struct {
	runner cypherRunner
}

// NewNeo4jPaperRepository uses driver for every call; the caller owns the
// driver and closes it at shutdown.
func NewNeo4jPaperRepository(driver neo4j.DriverWithContext, database string) *Neo4jPaperRepository {
	return &Neo4jPaperRepository{runner: &sessionRunner{driver: driver, database: database}}
}

func (r *Neo4jPaperRepository) Store(ctx context.Context, paper models.Paper) error {
	if err := ValidatePaper(paper); err != nil {
		return err
	}

	if err := r.runner.Write(ctx, mergePaperCypher, mergeParams(paper)); err != nil {
		return apperrors.NewStoreError("merge paper", err)
	}
	log.Debug().Str("title", paper.Title).Int("year", paper.Year).Msg("paper merged")
	return nil
}

func (r *Neo4jPaperRepository) Query(ctx context.Context, filter models.PaperQueryFilter) ([]models.Paper, error) {
	cypher, params := buildQueryCypher(filter)

	records, err := r.runner.Read(ctx, cypher, params)
	if err != nil {
		return nil, apperrors.NewStoreError("query papers", err)
	}

	papers := make([]models.Paper, 0, len(records))
	for _, record := range records {
		papers = append(papers, recordToPaper(record))
	}
	return papers, nil
}

func (r *Neo4jPaperRepository) Ping(ctx context.Context) error {
	if err := r.runner.VerifyConnectivity(ctx); err != nil {
		return apperrors.NewStoreError("ping", err)
	}
	return nil
}

func recordToPaper(record *neo4j.Record) models.Paper {
	return models.Paper{
		Title:    getStringFromRecord(record, "title"),
		Year:     getIntFromRecord(record, "year"),
		Topic:    getStringFromRecord(record, "topic"),
		Abstract: getStringFromRecord(record, "abstract"),
		Authors:  getStringSliceFromRecord(record, "authors"),
	}
}

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getIntFromRecord(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch i := val.(type) {
	case int64:
		return int(i)
	case int:
		return i
	}
	return 0
}

func getStringSliceFromRecord(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return []string{}
	}
	switch slice := val.(type) {
	case []string:
		return slice
	case []any:
		result := make([]string, 0, len(slice))
		for _, v := range slice {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return []string{}
}
