package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/ricette"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ricette.DocumentSink = (*DocumentSink)(nil)

// DocumentSink implements ricette.DocumentSink using SQLite. Each index is
// a row in the indexes table; documents are keyed by (index, id) and
// re-indexing a document replaces its body.
type DocumentSink struct {
	db *DB
}

// NewDocumentSink creates a new DocumentSink.
func NewDocumentSink(db *DB) *DocumentSink {
	return &DocumentSink{db: db}
}

// Index describes a stored index.
type Index struct {
	Name      string
	Mappings  json.RawMessage
	CreatedAt time.Time
}

// Exists reports whether the named index exists.
func (s *DocumentSink) Exists(ctx context.Context, index string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM indexes WHERE name = ?`, index).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateIndex creates the named index. Returns ECONFLICT if it exists.
func (s *DocumentSink) CreateIndex(ctx context.Context, index string, mappings json.RawMessage) error {
	if index == "" {
		return ricette.Errorf(ricette.EINVALID, "index name required")
	}
	if len(mappings) == 0 {
		mappings = json.RawMessage(`{}`)
	}
	if !json.Valid(mappings) {
		return ricette.Errorf(ricette.EINVALID, "index %q: mappings must be valid JSON", index)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO indexes (name, mappings, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, index, string(mappings), now())
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ricette.Errorf(ricette.ECONFLICT, "index %q already exists", index)
	}
	return nil
}

// FindIndex returns the named index. Returns ENOTFOUND if it does not exist.
func (s *DocumentSink) FindIndex(ctx context.Context, name string) (*Index, error) {
	var mappings, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT mappings, created_at FROM indexes WHERE name = ?
	`, name).Scan(&mappings, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ricette.Errorf(ricette.ENOTFOUND, "index %q not found", name)
	} else if err != nil {
		return nil, err
	}

	t, err := parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &Index{Name: name, Mappings: json.RawMessage(mappings), CreatedAt: t}, nil
}

// IndexOne stores doc in index. A document without an ID is assigned a
// random one.
func (s *DocumentSink) IndexOne(ctx context.Context, index string, doc *ricette.Document) error {
	_, err := s.IndexBulk(ctx, index, []*ricette.Document{doc})
	return err
}

// IndexBulk stores docs in index within a single transaction and returns
// how many were written. Returns ENOTFOUND if the index does not exist and
// EINVALID if any body is not valid JSON; nothing is written in either case.
func (s *DocumentSink) IndexBulk(ctx context.Context, index string, docs []*ricette.Document) (int, error) {
	for i, doc := range docs {
		if doc == nil {
			return 0, ricette.Errorf(ricette.EINVALID, "document %d is nil", i)
		}
		if !json.Valid(doc.Body) {
			return 0, ricette.Errorf(ricette.EINVALID, "document %d: body must be valid JSON", i)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM indexes WHERE name = ?`, index).Scan(&exists); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, ricette.Errorf(ricette.ENOTFOUND, "index %q not found", index)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (index_name, id, body, indexed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(index_name, id) DO UPDATE SET body = excluded.body, indexed_at = excluded.indexed_at
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	indexedAt := now()
	var written int
	for _, doc := range docs {
		if doc.ID == "" {
			doc.ID = uuid.New().String()
		}
		res, err := stmt.ExecContext(ctx, index, doc.ID, string(doc.Body), indexedAt)
		if err != nil {
			return 0, fmt.Errorf("index document %s: %w", doc.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		written += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// FindDocument returns a document by ID. Returns ENOTFOUND if missing.
func (s *DocumentSink) FindDocument(ctx context.Context, index, id string) (*ricette.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM documents WHERE index_name = ? AND id = ?
	`, index, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ricette.Errorf(ricette.ENOTFOUND, "document %q not found in index %q", id, index)
	} else if err != nil {
		return nil, err
	}
	return &ricette.Document{ID: id, Body: json.RawMessage(body)}, nil
}

// CountDocuments returns the number of documents in index.
func (s *DocumentSink) CountDocuments(ctx context.Context, index string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE index_name = ?`, index).Scan(&n)
	return n, err
}
