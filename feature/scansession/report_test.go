package scansession

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"list-scanner/core/storage/mocks"
	"list-scanner/feature/scansession/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteReport_Format(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)

	_, err = svc.Scan(ctx, session.ID, "X1")
	require.NoError(t, err)
	_, err = svc.Scan(ctx, session.ID, "Z9")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteReport(ctx, session.ID, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, ReportHeader, lines[0])

	// Scanned block: matched events only, timestamp first.
	assert.True(t, strings.HasSuffix(lines[1], "; X1; A"), "got %q", lines[1])
	assert.NotEqual(t, byte(';'), lines[1][0])

	// Unscanned block: empty leading timestamp field.
	assert.Equal(t, "; X2; A", lines[2])
	assert.Equal(t, "; Y1; B", lines[3])

	// The unmatched Z9 scan appears in neither block.
	assert.NotContains(t, buf.String(), "Z9")
}

func TestWriteReport_CompletedSessionHasNoUnscannedBlock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)

	for _, token := range []string{"X1", "Y1", "X2"} {
		_, err := svc.Scan(ctx, session.ID, token)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteReport(ctx, session.ID, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[1], "; X1; A"))
	assert.True(t, strings.HasSuffix(lines[2], "; Y1; B"))
	assert.True(t, strings.HasSuffix(lines[3], "; X2; A"))
	for _, line := range lines[1:] {
		assert.NotEqual(t, byte(';'), line[0], "unexpected unscanned line %q", line)
	}
}

func TestExportReport_Idempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)
	_, err = svc.Scan(ctx, session.ID, "X1")
	require.NoError(t, err)

	first, err := svc.ExportReport(ctx, session.ID)
	require.NoError(t, err)
	second, err := svc.ExportReport(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExportReport_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)
	_, err = svc.Scan(ctx, session.ID, "Y1")
	require.NoError(t, err)

	data, err := svc.ExportReport(ctx, session.ID)
	require.NoError(t, err)
	report := string(data)

	// Every loaded token appears in exactly one block: never both, never
	// neither.
	for _, token := range []string{"X1", "X2", "Y1"} {
		assert.Equal(t, 1, strings.Count(report, "; "+token+"; "), "token %s", token)
	}
}

func TestExportReport_UnknownSession(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ExportReport(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportFilename(t *testing.T) {
	session := &models.Session{
		ID:       "abc-123",
		Filename: "/data/lists/samples.csv",
		Datetime: "2018-06-01 10:00:00",
	}
	assert.Equal(t, "2018-06-01_10-00-00_abc-123_samples.csv", ReportFilename(session))
}

func TestSaveReport(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)

	t.Run("Writes File", func(t *testing.T) {
		dir := t.TempDir()
		path, err := svc.SaveReport(ctx, session.ID, dir)
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), ReportHeader))
	})

	t.Run("Missing Output Folder", func(t *testing.T) {
		_, err := svc.SaveReport(ctx, session.ID, "/no/such/folder")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUploadReport(t *testing.T) {
	store := newTestService(t).Store()
	client := new(mocks.Client)
	svc := NewService(store, client, "scan-reports", "reports/", zap.NewNop())
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)

	client.On("BucketExists", mock.Anything, "scan-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "scan-reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	objectName, err := svc.UploadReport(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(objectName, "reports/"))
	assert.True(t, strings.HasSuffix(objectName, ".csv"))
	client.AssertExpectations(t)
}

func TestUploadReport_NoClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.LoadList(ctx, "samples.csv", sampleTable())
	require.NoError(t, err)

	_, err = svc.UploadReport(ctx, session.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}
