package scansession

import "context"

// Progress returns the number of distinct matched (token, column) pairs among
// the session's scan events, and the total reference item count. The distinct
// count is derived from the persisted event history on every call, so a value
// recomputed at any later time always equals the live one. Unmatched scans
// and re-scans of an already counted pair never advance it.
func (s *Service) Progress(ctx context.Context, sessionID string) (scanned, total int64, err error) {
	events, err := s.store.ScannedEvents(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}

	type pair struct{ item, column string }
	distinct := make(map[pair]struct{})
	for _, event := range events {
		if event.Column == nil {
			continue
		}
		distinct[pair{event.Item, *event.Column}] = struct{}{}
	}

	total, err = s.store.CountReferenceItems(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}
	return int64(len(distinct)), total, nil
}
