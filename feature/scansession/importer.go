package scansession

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"list-scanner/core/logger"

	"go.uber.org/zap"
)

// positionalFields is the fixed column layout of a FluidX-style scan export:
// position, barcode, an unused status field, and the container (rack) id.
const positionalFields = 4

// ParsePositionalCSV parses a position-aware scan export into records. Rows
// with fewer than four fields or an empty barcode reject the whole batch
// before any matching starts, so a malformed file can never half-import.
func ParsePositionalCSV(r io.Reader) ([]PositionalScan, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	records := make([]PositionalScan, 0, len(rows))
	for i, row := range rows {
		if len(row) < positionalFields {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", ErrInvalidState, i+1, len(row), positionalFields)
		}
		token := strings.TrimSpace(row[1])
		if token == "" {
			return nil, fmt.Errorf("%w: row %d has an empty barcode", ErrInvalidState, i+1)
		}
		records = append(records, PositionalScan{
			Position:    strings.TrimSpace(row[0]),
			Token:       token,
			ContainerID: strings.TrimSpace(row[3]),
		})
	}
	return records, nil
}

// ImportPositionalScans feeds each record through Scan strictly in input
// order, preserving the position metadata in the returned results for
// operator review. It fails fast when the session does not exist or has no
// reference items loaded, and the first persistence failure aborts the whole
// import: a partially imported batch would silently misrepresent rack
// contents.
func (s *Service) ImportPositionalScans(ctx context.Context, sessionID string, records []PositionalScan) ([]PositionalResult, error) {
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	total, err := s.store.CountReferenceItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no reference list loaded for session %s", ErrInvalidState, sessionID)
	}

	l := logger.WithSession(s.logger, sessionID)
	results := make([]PositionalResult, 0, len(records))
	for _, record := range records {
		outcome, err := s.Scan(ctx, sessionID, record.Token)
		if err != nil {
			return nil, fmt.Errorf("import aborted at position %s: %w", record.Position, err)
		}
		if outcome == nil {
			return nil, fmt.Errorf("%w: blank token at position %s", ErrInvalidState, record.Position)
		}

		if outcome.Result.Matched() {
			l.Info("Found item from container",
				zap.String("item", outcome.Result.Token),
				zap.String("position", record.Position),
				zap.String("container", record.ContainerID),
				zap.String("column", *outcome.Result.Column),
			)
		}

		results = append(results, PositionalResult{
			Position:    record.Position,
			ContainerID: record.ContainerID,
			Result:      outcome.Result,
		})
	}

	l.Info("Imported positional scans", zap.Int("records", len(results)))
	return results, nil
}
