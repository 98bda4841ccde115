package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dshills/codegraph/pkg/types"
)

// Neo4jStore implements Store against a Neo4j server over Bolt.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
	dbName string
}

// Neo4jConfig contains connection details for a Neo4j server.
type Neo4jConfig struct {
	URI      string // e.g. "bolt://localhost:7687"
	Username string
	Password string
	Database string // empty means the server default database
}

// NewNeo4jStore connects to Neo4j and verifies connectivity before returning.
func NewNeo4jStore(ctx context.Context, cfg Neo4jConfig) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err)
	}

	return &Neo4jStore{driver: driver, dbName: cfg.Database}, nil
}

// Query runs one statement in its own session and collects all records.
func (s *Neo4jStore) Query(ctx context.Context, statement string, params map[string]any) ([]Row, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.dbName})
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, statement, params)
	if err != nil {
		return nil, mapStoreError(err)
	}

	var rows []Row
	for result.Next(ctx) {
		rows = append(rows, Row(result.Record().AsMap()))
	}
	if err := result.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return rows, nil
}

// Close shuts down the driver and its connection pool.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// mapStoreError translates driver failures into the pipeline taxonomy.
// Client-classified server errors (syntax, constraint, permission) become
// ErrStoreQueryRejected; everything else is treated as the store being
// unreachable.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var serverErr *neo4j.Neo4jError
	if errors.As(err, &serverErr) && serverErr.Classification() == "ClientError" {
		return fmt.Errorf("%w: %s", types.ErrStoreQueryRejected, serverErr.Msg)
	}

	return fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err)
}
