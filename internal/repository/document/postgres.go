package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kailas-cloud/plagcheck/internal/db"
	"github.com/kailas-cloud/plagcheck/internal/domain"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
)

const pqUniqueViolation = "23505"

const selectColumns = `id, filename, body, size, embedding, uploaded_at`

// PostgresRepo stores documents in the documents table. Insertion order follows the seq column.
type PostgresRepo struct {
	db *sql.DB
}

// NewPostgres creates a repository over an open connection pool.
func NewPostgres(conn *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: conn}
}

// Save inserts a document.
func (r *PostgresRepo) Save(ctx context.Context, doc domdoc.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, body, size, embedding, uploaded_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID(), doc.Filename(), doc.Text(), doc.Size(), db.EncodeVector(doc.Embedding()), doc.UploadedAt(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("document %s: %w", doc.ID(), db.ErrKeyExists)}
		}
		return &db.Error{Op: db.OpInsert, Err: err}
	}
	return nil
}

// Get returns a document by ID.
func (r *PostgresRepo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM documents WHERE id = $1`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domdoc.Document{}, domain.NewDocumentNotFound(id)
	}
	if err != nil {
		return domdoc.Document{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	return doc, nil
}

// List returns all documents in insertion order.
func (r *PostgresRepo) List(ctx context.Context) ([]domdoc.Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM documents ORDER BY seq`)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer func() { _ = rows.Close() }()

	docs := []domdoc.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: err}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return docs, nil
}

// Delete removes a document.
func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	if n == 0 {
		return domain.NewDocumentNotFound(id)
	}
	return nil
}

// Count returns the number of stored documents.
func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, &db.Error{Op: db.OpSelect, Err: err}
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (domdoc.Document, error) {
	var (
		id, filename, body string
		size               int
		raw                []byte
		uploadedAt         time.Time
	)
	if err := s.Scan(&id, &filename, &body, &size, &raw, &uploadedAt); err != nil {
		return domdoc.Document{}, err
	}
	vec, err := db.DecodeVector(raw)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document %s: %w", id, err)
	}
	return domdoc.Reconstruct(id, filename, body, size, vec, uploadedAt.UTC()), nil
}

// Ping checks database connectivity.
func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
