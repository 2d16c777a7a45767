package video_catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"lolstreamsearch/lib/dto"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore keeps each document as JSONB in video_document
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create assigns an id when the document has none
func (s *PostgresStore) Create(ctx context.Context, doc *dto.VideoDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO video_document (id, ytid, document) VALUES ($1, $2, $3)`,
		doc.ID, doc.YTID, raw)
	if err != nil {
		return fmt.Errorf("insert video document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*dto.VideoDocument, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM video_document WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	var doc dto.VideoDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode video document %s: %w", id, err)
	}
	return &doc, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM video_document WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *PostgresStore) SetActive(ctx context.Context, id string, active bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE video_document SET document = jsonb_set(document, '{isActive}', to_jsonb($2::boolean)), updated_at = NOW() WHERE id = $1`,
		id, active)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *PostgresStore) Filter(ctx context.Context, filters map[string][]string) ([]dto.VideoDocument, error) {
	query, args, err := buildFilterQuery(filters)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []dto.VideoDocument{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc dto.VideoDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PostgresStore) Distinct(ctx context.Context, field string) ([]string, error) {
	query, err := buildDistinctQuery(field)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// buildFilterQuery only interpolates names found in documentFields; values are always bound
func buildFilterQuery(filters map[string][]string) (string, []any, error) {
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var conditions []string
	var args []any
	for _, field := range fields {
		values := filters[field]
		if len(values) == 0 {
			continue
		}
		kind, err := lookupField(field)
		if err != nil {
			return "", nil, err
		}

		switch kind {
		case listField:
			raw, err := json.Marshal(values)
			if err != nil {
				return "", nil, err
			}
			args = append(args, string(raw))
			conditions = append(conditions, fmt.Sprintf("document->'%s' @> $%d::jsonb", field, len(args)))
		default:
			args = append(args, pq.Array(values))
			conditions = append(conditions, fmt.Sprintf("document->>'%s' = ANY($%d)", field, len(args)))
		}
	}

	query := "SELECT document FROM video_document"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	return query, args, nil
}

func buildDistinctQuery(field string) (string, error) {
	kind, err := lookupField(field)
	if err != nil {
		return "", err
	}
	if kind == listField {
		return fmt.Sprintf(
			"SELECT DISTINCT value FROM video_document, jsonb_array_elements_text(document->'%s') AS value ORDER BY value", field), nil
	}
	return fmt.Sprintf(
		"SELECT DISTINCT document->>'%[1]s' AS value FROM video_document WHERE document->>'%[1]s' IS NOT NULL ORDER BY value", field), nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
