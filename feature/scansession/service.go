package scansession

import (
	"context"

	"list-scanner/core/storage"
	"list-scanner/feature/scansession/models"

	"go.uber.org/zap"
)

// Service orchestrates the scanning engine: loading lists, matching scans,
// tracking progress, and exporting reports.
type Service struct {
	store  *Store
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewService creates a new scan session service. The storage client may be
// nil when report uploads are not used.
func NewService(store *Store, client storage.Client, bucket, prefix string, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Store exposes the underlying session store.
func (s *Service) Store() *Store {
	return s.store
}

// LoadList opens a new session for the list file and bulk-loads its reference
// items. It is the single entry point the CLI and HTTP layers use to start a
// scanning session.
func (s *Service) LoadList(ctx context.Context, listPath string, table *ReferenceTable) (*models.Session, int64, error) {
	session, err := s.store.OpenSession(ctx, listPath)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.LoadReferenceItems(ctx, session.ID, table)
	if err != nil {
		return nil, 0, err
	}
	return session, total, nil
}

// Sessions returns every recorded session, oldest first.
func (s *Service) Sessions(ctx context.Context) ([]models.Session, error) {
	return s.store.ListSessions(ctx)
}

// Session returns one session by id, or ErrNotFound.
func (s *Service) Session(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.store.GetSession(ctx, sessionID)
}
