package scansession

import (
	"context"
	"strings"

	"list-scanner/core/logger"

	"go.uber.org/zap"
)

// Scan matches one raw token against the session's reference items and
// records a scan event. Whitespace-only tokens are a no-op and return a nil
// outcome without persisting anything. Unmatched tokens are still recorded,
// so "scanned but not expected" items stay visible to operators.
//
// The lookup-then-record sequence has no retry: a storage failure fails the
// whole call, and callers must not blindly resubmit the token since that
// would record a duplicate scan event.
func (s *Service) Scan(ctx context.Context, sessionID, raw string) (*ScanOutcome, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return nil, nil
	}

	match, err := s.store.FindReferenceItem(ctx, sessionID, token)
	if err != nil {
		return nil, err
	}

	result := MatchResult{Token: token}
	var itemID *uint
	if match != nil {
		id := match.ItemID
		column := match.Column
		itemID = &id
		result.ItemID = &id
		result.Column = &column
		result.Ambiguous = match.Ambiguous
	}

	if err := s.store.RecordScan(ctx, sessionID, itemID, token); err != nil {
		return nil, err
	}

	l := logger.WithSession(s.logger, sessionID)
	if result.Matched() {
		l.Info("Found item", zap.String("item", token), zap.String("column", *result.Column))
	} else {
		l.Warn("Could not find item in lists", zap.String("item", token))
	}

	scanned, total, err := s.Progress(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	outcome := &ScanOutcome{
		Result:    result,
		Scanned:   scanned,
		Total:     total,
		Completed: total > 0 && scanned == total,
	}
	if outcome.Completed {
		l.Info("All items scanned", zap.Int64("items", total))
	}
	return outcome, nil
}
