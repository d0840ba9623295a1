package postgresengine

import (
	"context"
	"time"

	"github.com/relaxtogether/gathering-service-go/gathering/postgresengine/internal/adapters"
)

// fakeDB implements adapters.DBAdapter for tests, recording every statement
// and serving queued result sets.
type fakeDB struct {
	queries  []string
	execs    []string
	queued   []*fakeRows
	queryErr error
	execErr  error
	beginErr error
	tx       *fakeTx
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.queries = append(f.queries, query)

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return f.nextRows(), nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.execs = append(f.execs, query)

	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult{rowsAffected: 1}, nil
}

func (f *fakeDB) Begin(_ context.Context) (adapters.DBTx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}

	if f.tx == nil {
		f.tx = &fakeTx{}
	}

	return f.tx, nil
}

func (f *fakeDB) nextRows() *fakeRows {
	if len(f.queued) == 0 {
		return &fakeRows{}
	}

	rows := f.queued[0]
	f.queued = f.queued[1:]

	return rows
}

// fakeTx implements adapters.DBTx for tests.
type fakeTx struct {
	queries    []string
	execs      []string
	queued     []*fakeRows
	queryErr   error
	execErr    error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.queries = append(f.queries, query)

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	if len(f.queued) == 0 {
		return &fakeRows{}, nil
	}

	rows := f.queued[0]
	f.queued = f.queued[1:]

	return rows, nil
}

func (f *fakeTx) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.execs = append(f.execs, query)

	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult{rowsAffected: 1}, nil
}

func (f *fakeTx) Commit(_ context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(_ context.Context) error {
	f.rolledBack = true
	return nil
}

// fakeRows implements adapters.DBRows over canned row values.
type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	if r.idx < len(r.rows) {
		r.idx++
		return true
	}

	return false
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]

	for i, d := range dest {
		assignValue(d, row[i])
	}

	return nil
}

func (r *fakeRows) Close() error {
	return nil
}

func assignValue(dest any, val any) {
	switch d := dest.(type) {
	case *int64:
		*d = val.(int64)
	case *int:
		*d = val.(int)
	case *string:
		*d = val.(string)
	case *float64:
		*d = val.(float64)
	case *time.Time:
		*d = val.(time.Time)
	}
}

// fakeResult implements adapters.DBResult.
type fakeResult struct {
	rowsAffected int64
}

func (f fakeResult) RowsAffected() (int64, error) {
	return f.rowsAffected, nil
}

// newTestStore builds a Store on the fake adapter with a fixed clock.
func newTestStore(db *fakeDB, now time.Time) Store {
	return Store{
		db:    db,
		clock: func() time.Time { return now },
	}
}
