package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// database/sql keeps a connection opener goroutine per pool until Close.
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

func openTemp(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "nested", "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// ── Migrations ──────────────────────────────────────────────────────────────

func TestOpen_CreatesDirAndMigrates(t *testing.T) {
	conn := openTemp(t)

	versions, err := AppliedVersions(context.Background(), conn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, versions)

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM door_access_log`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM person_memberships`).Scan(&n))
	assert.Zero(t, n)
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := openTemp(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, conn))
	require.NoError(t, Migrate(ctx, conn))

	versions, err := AppliedVersions(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, versions)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0001_init.sql", 1, false},
		{"0042_add_index.sql", 42, false},
		{"init.sql", 0, true},
		{"abc_init.sql", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseVersion(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSeedDev_Idempotent(t *testing.T) {
	conn := openTemp(t)
	ctx := context.Background()
	opt := SeedDevOptions{Controllers: []int{1, 2, 0}}

	require.NoError(t, SeedDev(ctx, conn, opt))
	require.NoError(t, SeedDev(ctx, conn, opt))

	var controllers, cards int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM controllers WHERE enabled = 1`).Scan(&controllers))
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM key_cards`).Scan(&cards))
	assert.Equal(t, 2, controllers)
	assert.Equal(t, 1, cards)
}

// ── Worker ──────────────────────────────────────────────────────────────────

func TestWorker_CommitsAndRollsBack(t *testing.T) {
	conn := openTemp(t)
	w := NewWorker(conn)
	defer w.Close()
	ctx := context.Background()

	err := w.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO locations(name, created_at_ms) VALUES ('kept', 0)`)
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = w.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO locations(name, created_at_ms) VALUES ('dropped', 0)`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var names []string
	rows, err := conn.Query(`SELECT name FROM locations ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"kept"}, names)
}

func TestWorker_SerializesJobs(t *testing.T) {
	conn := openTemp(t)
	w := NewWorker(conn)
	defer w.Close()

	var inFlight, maxSeen int32
	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			done <- w.Do(context.Background(), func(context.Context, *sql.Tx) error {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					m := atomic.LoadInt32(&maxSeen)
					if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
						break
					}
				}
				atomic.AddInt32(&inFlight, -1)
				return nil
			})
		}()
	}
	for i := 0; i < 20; i++ {
		require.NoError(t, <-done)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxSeen))
}

func TestWorker_ClosedRejectsJobs(t *testing.T) {
	conn := openTemp(t)
	w := NewWorker(conn)
	w.Close()
	w.Close()

	err := w.Do(context.Background(), func(context.Context, *sql.Tx) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerClosed)
}

func TestWorker_CancelledContext(t *testing.T) {
	conn := openTemp(t)
	w := NewWorker(conn)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := w.Do(ctx, func(context.Context, *sql.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
