package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lysyi3m/bib-comb/app/normalize"
)

// PublicationRepository stores the latest conversion run.
type PublicationRepository struct {
	db *DB
}

func NewPublicationRepository(db *DB) *PublicationRepository {
	return &PublicationRepository{db: db}
}

// ReplaceAll swaps the stored publications for entries in one transaction,
// keeping their order.
func (r *PublicationRepository) ReplaceAll(entries []*normalize.Entry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM publications`); err != nil {
		return fmt.Errorf("failed to clear publications: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO publications (cite_key, position, document, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	for i, entry := range entries {
		document, err := entry.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to encode publication %s: %w", entry.Key, err)
		}

		if _, err := stmt.Exec(entry.Key, i, string(document), createdAt); err != nil {
			return fmt.Errorf("failed to insert publication %s: %w", entry.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit publications: %w", err)
	}

	return nil
}

func (r *PublicationRepository) List() ([]Publication, error) {
	rows, err := r.db.Query(`
		SELECT id, cite_key, position, document, created_at
		FROM publications
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list publications: %w", err)
	}
	defer rows.Close()

	publications := []Publication{}
	for rows.Next() {
		publication, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		publications = append(publications, *publication)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate publications: %w", err)
	}

	return publications, nil
}

// Get returns the first publication with the given cite key, or nil.
func (r *PublicationRepository) Get(citeKey string) (*Publication, error) {
	row := r.db.QueryRow(`
		SELECT id, cite_key, position, document, created_at
		FROM publications
		WHERE cite_key = ?
		ORDER BY position
		LIMIT 1
	`, citeKey)

	publication, err := scanPublication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return publication, nil
}

func (r *PublicationRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM publications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count publications: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(s scanner) (*Publication, error) {
	var (
		publication Publication
		document    string
		createdAt   string
	)

	err := s.Scan(&publication.ID, &publication.CiteKey, &publication.Position, &document, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan publication: %w", err)
	}

	publication.Document = []byte(document)
	if publication.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at for publication %d: %w", publication.ID, err)
	}

	return &publication, nil
}
