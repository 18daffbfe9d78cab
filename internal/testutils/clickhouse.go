// Package testutils provides shared mocks for the ClickHouse driver.
package testutils

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing. Queries return
// empty result sets; batches record what was appended.
type MockClickHouseConn struct {
	driver.Conn
	PingErr  error
	ExecErr  error
	QueryErr error
	Batches  []*MockBatch
}

func (m *MockClickHouseConn) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockClickHouseConn) Exec(ctx context.Context, query string, args ...interface{}) error {
	return m.ExecErr
}

func (m *MockClickHouseConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return &MockRows{}, nil
}

func (m *MockClickHouseConn) QueryRow(ctx context.Context, query string, args ...interface{}) driver.Row {
	return &MockRow{}
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	batch := &MockBatch{}
	m.Batches = append(m.Batches, batch)
	return batch, nil
}

// MockRows yields no rows.
type MockRows struct {
	driver.Rows
}

func (m *MockRows) Next() bool                     { return false }
func (m *MockRows) Scan(dest ...interface{}) error { return nil }
func (m *MockRows) Close() error                   { return nil }
func (m *MockRows) Err() error                     { return nil }

// MockRow scans nothing.
type MockRow struct {
	driver.Row
}

func (m *MockRow) Scan(dest ...interface{}) error { return nil }
func (m *MockRow) Err() error                     { return nil }

// MockBatch records appended rows.
type MockBatch struct {
	driver.Batch
	Appended  [][]interface{}
	AppendErr error
	SendErr   error
	Sent      bool
}

func (b *MockBatch) Append(v ...interface{}) error {
	if b.AppendErr != nil {
		return b.AppendErr
	}
	b.Appended = append(b.Appended, v)
	return nil
}

func (b *MockBatch) Send() error {
	if b.SendErr != nil {
		return b.SendErr
	}
	b.Sent = true
	return nil
}
