package clickhouse

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// RunQuery executes a read query and returns each row as a slice of column values.
func (r *Repository) RunQuery(ctx context.Context, query string) (result [][]any, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("run_query", "", err, start)
	}()

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	columns := rows.ColumnTypes()
	for rows.Next() {
		dest := make([]any, len(columns))
		for i, c := range columns {
			dest[i] = reflect.New(c.ScanType()).Interface()
		}
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan query row: %w", err)
		}
		row := make([]any, len(dest))
		for i, d := range dest {
			row[i] = reflect.ValueOf(d).Elem().Interface()
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query rows: %w", err)
	}
	return result, nil
}
