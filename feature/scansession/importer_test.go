package scansession

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositionalCSV(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		input := "A1,X1,OK,RACK01\nA2,X2,OK,RACK01\nB1,Y1,OK,RACK01\n"
		records, err := ParsePositionalCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "A1", records[0].Position)
		assert.Equal(t, "X1", records[0].Token)
		assert.Equal(t, "RACK01", records[0].ContainerID)
	})

	t.Run("Too Few Fields", func(t *testing.T) {
		input := "A1,X1,OK,RACK01\nA2,X2\n"
		_, err := ParsePositionalCSV(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Empty Barcode", func(t *testing.T) {
		input := "A1,,OK,RACK01\n"
		_, err := ParsePositionalCSV(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Empty File", func(t *testing.T) {
		records, err := ParsePositionalCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestImportPositionalScans(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)

	records := []PositionalScan{
		{Position: "A1", Token: "X1", ContainerID: "RACK01"},
		{Position: "A2", Token: "Z9", ContainerID: "RACK01"},
		{Position: "B1", Token: "Y1", ContainerID: "RACK01"},
	}

	results, err := svc.ImportPositionalScans(ctx, session.ID, records)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results mirror input order and keep the position metadata.
	assert.Equal(t, "A1", results[0].Position)
	assert.Equal(t, "RACK01", results[0].ContainerID)
	assert.True(t, results[0].Result.Matched())
	assert.False(t, results[1].Result.Matched())
	assert.True(t, results[2].Result.Matched())

	scanned, total, err := svc.Progress(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), scanned)
	assert.Equal(t, int64(3), total)
}

func TestImportPositionalScans_UnknownSession(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ImportPositionalScans(context.Background(), "no-such-session", []PositionalScan{
		{Position: "A1", Token: "X1", ContainerID: "RACK01"},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportPositionalScans_NoReferenceListLoaded(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// A session without reference items cannot meaningfully match anything.
	session, err := svc.Store().OpenSession(ctx, "samples.csv")
	require.NoError(t, err)

	_, err = svc.ImportPositionalScans(ctx, session.ID, []PositionalScan{
		{Position: "A1", Token: "X1", ContainerID: "RACK01"},
	})
	assert.ErrorIs(t, err, ErrInvalidState)

	events, err := svc.Store().ScannedEvents(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestImportPositionalScans_BlankTokenAborts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)

	_, err = svc.ImportPositionalScans(ctx, session.ID, []PositionalScan{
		{Position: "A1", Token: "   ", ContainerID: "RACK01"},
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}
