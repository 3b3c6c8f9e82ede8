package scansession

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"list-scanner/core/database"
	"list-scanner/feature/scansession/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestService opens a fresh SQLite store in a temp dir and wires a
// service without object storage.
func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "scan_test.sqlite3"),
	})
	require.NoError(t, err)

	store := NewStore(db, zap.NewNop())
	require.NoError(t, store.Migrate())
	return NewService(store, nil, "scan-reports", "reports/", zap.NewNop())
}

// sampleTable is the reference list used by the scenario tests: two columns,
// no header.
func sampleTable() *ReferenceTable {
	table := NewReferenceTable()
	table.Append("A", "X1", "X2")
	table.Append("B", "Y1")
	return table
}

func TestOpenSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Store().OpenSession(ctx, "/data/samples.csv")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "/data/samples.csv", session.Filename)

	_, err = time.Parse(models.DatetimeFormat, session.Datetime)
	assert.NoError(t, err)

	loaded, err := svc.Store().GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
}

func TestGetSession_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Store().GetSession(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadReferenceItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Store().OpenSession(ctx, "samples.csv")
	require.NoError(t, err)

	t.Run("Trims And Skips Empty Cells", func(t *testing.T) {
		table := NewReferenceTable()
		table.Append(" A ", " X1 ", "", "  ", "X2")
		total, err := svc.Store().LoadReferenceItems(ctx, session.ID, table)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		match, err := svc.Store().FindReferenceItem(ctx, session.ID, "X1")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "A", match.Column)
	})

	t.Run("Rejects Empty Table", func(t *testing.T) {
		empty := NewReferenceTable()
		empty.Append("A", "", "   ")
		other, err := svc.Store().OpenSession(ctx, "empty.csv")
		require.NoError(t, err)

		_, err = svc.Store().LoadReferenceItems(ctx, other.ID, empty)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestFindReferenceItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Store().OpenSession(ctx, "samples.csv")
	require.NoError(t, err)
	_, err = svc.Store().LoadReferenceItems(ctx, session.ID, sampleTable())
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		match, err := svc.Store().FindReferenceItem(ctx, session.ID, "Y1")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "B", match.Column)
		assert.False(t, match.Ambiguous)
	})

	t.Run("Not Found", func(t *testing.T) {
		match, err := svc.Store().FindReferenceItem(ctx, session.ID, "Z9")
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

func TestFindReferenceItem_AmbiguousIsDeterministic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Store().OpenSession(ctx, "samples.csv")
	require.NoError(t, err)

	table := NewReferenceTable()
	table.Append("A", "DUP")
	table.Append("B", "DUP")
	_, err = svc.Store().LoadReferenceItems(ctx, session.ID, table)
	require.NoError(t, err)

	// The first-inserted column wins, on every repeated lookup.
	for i := 0; i < 5; i++ {
		match, err := svc.Store().FindReferenceItem(ctx, session.ID, "DUP")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "A", match.Column)
		assert.True(t, match.Ambiguous)
	}
}

func TestUnscannedReferenceItems_Distinct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Store().OpenSession(ctx, "samples.csv")
	require.NoError(t, err)

	// Duplicate reference rows with the same token and column collapse to
	// one unscanned entry.
	table := NewReferenceTable()
	table.Append("A", "X1", "X1", "X2")
	_, err = svc.Store().LoadReferenceItems(ctx, session.ID, table)
	require.NoError(t, err)

	unscanned, err := svc.Store().UnscannedReferenceItems(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, unscanned, 2)
}

func TestUnscannedReferenceItems_ScannedTokenDrops(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Store().OpenSession(ctx, "samples.csv")
	require.NoError(t, err)
	_, err = svc.Store().LoadReferenceItems(ctx, session.ID, sampleTable())
	require.NoError(t, err)

	_, err = svc.Scan(ctx, session.ID, "X1")
	require.NoError(t, err)

	unscanned, err := svc.Store().UnscannedReferenceItems(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, unscanned, 2)
	for _, item := range unscanned {
		assert.NotEqual(t, "X1", item.Item)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sessionA, err := svc.Store().OpenSession(ctx, "a.csv")
	require.NoError(t, err)
	_, err = svc.Store().LoadReferenceItems(ctx, sessionA.ID, sampleTable())
	require.NoError(t, err)

	tableB := NewReferenceTable()
	tableB.Append("1", "OTHER")
	sessionB, err := svc.Store().OpenSession(ctx, "b.csv")
	require.NoError(t, err)
	_, err = svc.Store().LoadReferenceItems(ctx, sessionB.ID, tableB)
	require.NoError(t, err)

	// X1 exists only in session A; scanning it against B never resolves.
	outcome, err := svc.Scan(ctx, sessionB.ID, "X1")
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Result.Matched())

	sessions, err := svc.Sessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestScannedEvents_Ordering(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Store().OpenSession(ctx, "samples.csv")
	require.NoError(t, err)
	_, err = svc.Store().LoadReferenceItems(ctx, session.ID, sampleTable())
	require.NoError(t, err)

	for _, token := range []string{"X1", "Z9", "Y1"} {
		_, err := svc.Scan(ctx, session.ID, token)
		require.NoError(t, err)
	}

	events, err := svc.Store().ScannedEvents(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Same-timestamp ties break by insertion order.
	assert.Equal(t, "X1", events[0].Item)
	assert.Equal(t, "Z9", events[1].Item)
	assert.Equal(t, "Y1", events[2].Item)

	require.NotNil(t, events[0].Column)
	assert.Equal(t, "A", *events[0].Column)
	assert.Nil(t, events[1].Column)
}
