package scansession

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"list-scanner/core/logger"
	"list-scanner/feature/scansession/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ReportHeader is the first line of every session report.
const ReportHeader = "Datetime; Item; Column"

// WriteReport writes the reconciliation report for a session: the header,
// one line per matched scan event in scan order, then one line per unscanned
// reference item with an empty leading timestamp field. The exporter performs
// no sorting of its own; block ordering follows the store's query order.
func (s *Service) WriteReport(ctx context.Context, sessionID string, w io.Writer) error {
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return err
	}

	scanned, err := s.store.ScannedEvents(ctx, sessionID)
	if err != nil {
		return err
	}
	unscanned, err := s.store.UnscannedReferenceItems(ctx, sessionID)
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(w)
	fmt.Fprintln(buf, ReportHeader)
	for _, event := range scanned {
		// Unmatched scans stay in the session log; the report's scanned
		// block holds matched events only.
		if event.Column == nil {
			continue
		}
		fmt.Fprintf(buf, "%s; %s; %s\n", event.ScannedDatetime, event.Item, *event.Column)
	}
	for _, item := range unscanned {
		fmt.Fprintf(buf, "; %s; %s\n", item.Item, item.Column)
	}
	return buf.Flush()
}

// ExportReport builds the report for a session and returns its bytes.
func (s *Service) ExportReport(ctx context.Context, sessionID string) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteReport(ctx, sessionID, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportFilename derives the report file name from a session: its creation
// time (with filesystem-safe separators), session id, and the list file stem.
func ReportFilename(session *models.Session) string {
	datetime := strings.NewReplacer(":", "-", " ", "_").Replace(session.Datetime)
	base := filepath.Base(session.Filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s_%s.csv", datetime, session.ID, stem)
}

// SaveReport writes the session report into the output folder and returns
// the full file path.
func (s *Service) SaveReport(ctx context.Context, sessionID, outputDir string) (string, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(outputDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: output folder %s", ErrNotFound, outputDir)
	}

	path := filepath.Join(outputDir, ReportFilename(session))
	f, err := os.Create(path)
	if err != nil {
		return "", storageErr("create report file", err)
	}
	defer f.Close()

	if err := s.WriteReport(ctx, sessionID, f); err != nil {
		return "", err
	}
	logger.WithSession(s.logger, sessionID).Info("Saved scanning session report", zap.String("path", path))
	return path, nil
}

// UploadReport builds the session report and uploads it to the configured
// object storage bucket under the report prefix. It returns the object name.
func (s *Service) UploadReport(ctx context.Context, sessionID string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: no storage client configured", ErrInvalidState)
	}
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	data, err := s.ExportReport(ctx, sessionID)
	if err != nil {
		return "", err
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", storageErr("check report bucket", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", storageErr("create report bucket", err)
		}
	}

	objectName := s.prefix + ReportFilename(session)
	_, err = s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", storageErr("upload report", err)
	}

	logger.WithSession(s.logger, sessionID).Info("Uploaded scanning session report",
		zap.String("bucket", s.bucket),
		zap.String("object", objectName),
	)
	return objectName, nil
}
