package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/phrasenet/pkg/phrasenet"
	"github.com/cognicore/phrasenet/pkg/phrasenet/export"
	"github.com/cognicore/phrasenet/pkg/phrasenet/internalerr"
)

const schema = `
CREATE TABLE snapshot (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	relation_type TEXT NOT NULL,
	window_size INTEGER NOT NULL,
	relation_phrase TEXT NOT NULL,
	use_stopwords INTEGER NOT NULL,
	min_edge_weight INTEGER NOT NULL,
	top_n INTEGER NOT NULL,
	sentences INTEGER NOT NULL,
	tokens INTEGER NOT NULL
);

CREATE TABLE nodes (
	position INTEGER PRIMARY KEY,
	id TEXT UNIQUE NOT NULL,
	count INTEGER NOT NULL
);

CREATE TABLE edges (
	position INTEGER PRIMARY KEY,
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	weight INTEGER NOT NULL,
	UNIQUE(source, target),
	FOREIGN KEY(source) REFERENCES nodes(id),
	FOREIGN KEY(target) REFERENCES nodes(id)
);
`

func open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Write stores s in a fresh SQLite file at path, replacing any existing file.
func Write(ctx context.Context, path string, s export.Snapshot) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	db, err := open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	o := s.Options
	_, err = tx.ExecContext(ctx, `
INSERT INTO snapshot (id, created_at, relation_type, window_size, relation_phrase,
	use_stopwords, min_edge_weight, top_n, sentences, tokens)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(o.RelationType),
		o.WindowSize,
		o.RelationPhrase,
		o.UseStopwords,
		o.MinEdgeWeight,
		o.TopN,
		s.Stats.Sentences,
		s.Stats.Tokens,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes (position, id, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	for i, n := range s.Graph.Nodes {
		if _, err := nodeStmt.ExecContext(ctx, i, n.ID, n.Count); err != nil {
			return fmt.Errorf("insert node %q: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `INSERT INTO edges (position, source, target, weight) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer edgeStmt.Close()

	for i, e := range s.Graph.Edges {
		if _, err := edgeStmt.ExecContext(ctx, i, e.Source, e.Target, e.Weight); err != nil {
			return fmt.Errorf("insert edge %s→%s: %w", e.Source, e.Target, err)
		}
	}

	return tx.Commit()
}

// Read loads the snapshot stored at path.
func Read(ctx context.Context, path string) (export.Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return export.Snapshot{}, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}

	db, err := open(ctx, path)
	if err != nil {
		return export.Snapshot{}, err
	}
	defer db.Close()

	var (
		s         export.Snapshot
		createdAt string
		relType   string
	)
	err = db.QueryRowContext(ctx, `
SELECT id, created_at, relation_type, window_size, relation_phrase,
	use_stopwords, min_edge_weight, top_n, sentences, tokens
FROM snapshot LIMIT 1`).Scan(
		&s.ID,
		&createdAt,
		&relType,
		&s.Options.WindowSize,
		&s.Options.RelationPhrase,
		&s.Options.UseStopwords,
		&s.Options.MinEdgeWeight,
		&s.Options.TopN,
		&s.Stats.Sentences,
		&s.Stats.Tokens,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return export.Snapshot{}, fmt.Errorf("%w: empty snapshot file", internalerr.ErrNotFound)
	}
	if err != nil {
		return export.Snapshot{}, err
	}
	s.Options.RelationType = phrasenet.RelationType(relType)
	if s.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return export.Snapshot{}, fmt.Errorf("parse created_at: %w", err)
	}

	if s.Graph.Nodes, err = readNodes(ctx, db); err != nil {
		return export.Snapshot{}, err
	}
	if s.Graph.Edges, err = readEdges(ctx, db); err != nil {
		return export.Snapshot{}, err
	}
	s.Stats.Nodes = len(s.Graph.Nodes)
	s.Stats.Edges = len(s.Graph.Edges)

	return s, nil
}

func readNodes(ctx context.Context, db *sql.DB) ([]phrasenet.Node, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, count FROM nodes ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nodes := []phrasenet.Node{}
	for rows.Next() {
		var n phrasenet.Node
		if err := rows.Scan(&n.ID, &n.Count); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

func readEdges(ctx context.Context, db *sql.DB) ([]phrasenet.Edge, error) {
	rows, err := db.QueryContext(ctx, `SELECT source, target, weight FROM edges ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	edges := []phrasenet.Edge{}
	for rows.Next() {
		var e phrasenet.Edge
		if err := rows.Scan(&e.Source, &e.Target, &e.Weight); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
