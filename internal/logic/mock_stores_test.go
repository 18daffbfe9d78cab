package logic

import (
	"context"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// assign copies val into the pointer dest via reflection. A nil val leaves
// the destination at its zero value, which is how NULL columns behave.
func assign(dest interface{}, val interface{}) {
	if val == nil {
		return
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(val))
}

// MockConn is a ClickHouse driver.Conn returning canned aggregate rows.
type MockConn struct {
	driver.Conn
	Rows       [][]interface{}
	QueryCalls int
	QueryErr   error
}

func (m *MockConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	m.QueryCalls++
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return &MockRows{rows: m.Rows}, nil
}

type MockRows struct {
	driver.Rows
	rows [][]interface{}
	idx  int
}

func (m *MockRows) Next() bool {
	m.idx++
	return m.idx <= len(m.rows)
}

func (m *MockRows) Scan(dest ...interface{}) error {
	row := m.rows[m.idx-1]
	for i := range dest {
		assign(dest[i], row[i])
	}
	return nil
}

func (m *MockRows) Close() error { return nil }
func (m *MockRows) Err() error   { return nil }

// MockPgPool is a PgPool returning canned roster rows.
type MockPgPool struct {
	Rows     [][]interface{}
	RowData  []interface{}
	ExecTag  pgconn.CommandTag
	QueryErr error
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return &mockPgRows{rows: m.Rows}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &mockPgRow{data: m.RowData}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.ExecTag, nil
}

type mockPgRows struct {
	rows [][]interface{}
	idx  int
}

func (m *mockPgRows) Next() bool {
	m.idx++
	return m.idx <= len(m.rows)
}

func (m *mockPgRows) Scan(dest ...any) error {
	row := m.rows[m.idx-1]
	for i := range dest {
		assign(dest[i], row[i])
	}
	return nil
}

func (m *mockPgRows) Close()                                       {}
func (m *mockPgRows) Err() error                                   { return nil }
func (m *mockPgRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *mockPgRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *mockPgRows) Values() ([]any, error)                       { return nil, nil }
func (m *mockPgRows) RawValues() [][]byte                          { return nil }
func (m *mockPgRows) Conn() *pgx.Conn                              { return nil }

type mockPgRow struct {
	data []interface{}
	err  error
}

func (m *mockPgRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		return pgx.ErrNoRows
	}
	for i := range dest {
		assign(dest[i], m.data[i])
	}
	return nil
}
