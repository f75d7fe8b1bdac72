package clickhouse

import (
	"context"
	"errors"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type fakeConn struct {
	driver.Conn
	query    func(ctx context.Context, query string, args ...any) (driver.Rows, error)
	queryRow func(ctx context.Context, query string, args ...any) driver.Row
	batches  []*fakeBatch
	prepare  func(query string) (*fakeBatch, error)
}

func (c *fakeConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	return c.query(ctx, query, args...)
}

func (c *fakeConn) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	return c.queryRow(ctx, query, args...)
}

func (c *fakeConn) PrepareBatch(_ context.Context, query string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	b := &fakeBatch{query: query}
	if c.prepare != nil {
		custom, err := c.prepare(query)
		if err != nil {
			return nil, err
		}
		if custom != nil {
			custom.query = query
			b = custom
		}
	}
	c.batches = append(c.batches, b)
	return b, nil
}

type fakeBatch struct {
	driver.Batch
	query     string
	rows      [][]any
	appendErr error
	sendErr   error
	sent      bool
	aborted   bool
}

func (b *fakeBatch) Append(v ...any) error {
	if b.appendErr != nil {
		return b.appendErr
	}
	b.rows = append(b.rows, v)
	return nil
}

func (b *fakeBatch) Send() error {
	b.sent = true
	return b.sendErr
}

func (b *fakeBatch) Abort() error {
	b.aborted = true
	return nil
}

type fakeRows struct {
	driver.Rows
	values   [][]any
	columns  []driver.ColumnType
	pos      int
	scanErr  error
	closeErr error
	closed   bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	return assign(r.values[r.pos-1], dest)
}

func (r *fakeRows) ColumnTypes() []driver.ColumnType {
	return r.columns
}

func (r *fakeRows) Err() error {
	return nil
}

func (r *fakeRows) Close() error {
	r.closed = true
	return r.closeErr
}

type fakeRow struct {
	driver.Row
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

type fakeColumn struct {
	driver.ColumnType
	name     string
	scanType reflect.Type
}

func (c fakeColumn) Name() string {
	return c.name
}

func (c fakeColumn) ScanType() reflect.Type {
	return c.scanType
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(values[i]))
	}
	return nil
}
