package annotation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadPostgres reads every row of table into an annotation Table. The
// table name may be schema-qualified ("schema.table").
func LoadPostgres(ctx context.Context, databaseURL, table string) (*Table, error) {
	if table == "" {
		return nil, fmt.Errorf("%w: empty table name", ErrMalformedTable)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	config.MaxConns = 2
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	rows, err := pool.Query(ctx, selectAll(table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	return collectTable(rows)
}

func selectAll(table string) string {
	return "SELECT * FROM " + pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// collectTable drains rows, normalizing every value.
func collectTable(rows pgx.Rows) (*Table, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	table := &Table{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", len(table.Rows)+1, err)
		}
		row := make(Row, len(columns))
		for i, v := range values {
			nv, err := Normalize(v)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", len(table.Rows)+1, columns[i], err)
			}
			row[columns[i]] = nv
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return table, nil
}
