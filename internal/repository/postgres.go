package repository

import (
	"context"
	"fmt"

	"housing-prediction-api/internal/demographics"
	"housing-prediction-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads demographics from PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// LoadDemographics reads every row of table into an in-memory demographics
// table. Column values are converted to strings; NULLs are left out.
func (r *Repository) LoadDemographics(ctx context.Context, table string) (*demographics.Table, error) {
	sql := fmt.Sprintf("SELECT * FROM %s", pgx.Identifier{table}.Sanitize())

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, &models.LoadError{
			Resource: "demographics",
			Source:   table,
			Err:      fmt.Errorf("repository: failed to execute query: %w", err),
		}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var records []demographics.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &models.LoadError{
				Resource: "demographics",
				Source:   table,
				Err:      fmt.Errorf("repository: failed to scan row: %w", err),
			}
		}

		row := make(demographics.Row, len(values))
		for i, v := range values {
			if s := cellString(v); s != "" {
				row[columns[i]] = s
			}
		}
		records = append(records, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &models.LoadError{
			Resource: "demographics",
			Source:   table,
			Err:      fmt.Errorf("repository: error iterating rows: %w", err),
		}
	}

	t, err := demographics.FromRows(columns, records)
	if err != nil {
		return nil, &models.LoadError{Resource: "demographics", Source: table, Err: err}
	}
	return t, nil
}

// cellString renders a decoded column value. Text is kept verbatim; NUMERIC
// keeps its exact decimal text; other numbers use their shortest form.
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case pgtype.Numeric:
		text, err := c.Value()
		if err != nil {
			return ""
		}
		s, _ := text.(string)
		return s
	}
	return demographics.Normalize(v)
}
