package scansession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"list-scanner/feature/scansession/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store provides durable, queryable persistence of sessions, reference items,
// and scan events. Every query is scoped by session id; cross-session lookups
// never happen implicitly.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a new session store.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Migrate creates the session, reference_item, and scan_event tables if they
// do not exist yet.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.Session{}, &models.ReferenceItem{}, &models.ScanEvent{}); err != nil {
		return storageErr("migrate schema", err)
	}
	return nil
}

// OpenSession creates and persists a new session for the given list path.
func (s *Store) OpenSession(ctx context.Context, listPath string) (*models.Session, error) {
	session := &models.Session{
		ID:       uuid.NewString(),
		Filename: listPath,
		Datetime: time.Now().Format(models.DatetimeFormat),
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, storageErr("create session", err)
	}
	s.logger.Info("Started new session",
		zap.String("session", session.ID),
		zap.String("filename", listPath),
	)
	return session, nil
}

// LoadReferenceItems trims and bulk-inserts one reference item per non-empty
// cell of the table, tagged with its column. The insert is a single bulk
// write; a table without any usable cell is rejected so a session is never
// silently left empty. It returns the number of items loaded.
func (s *Store) LoadReferenceItems(ctx context.Context, sessionID string, table *ReferenceTable) (int64, error) {
	var rows []models.ReferenceItem
	for _, label := range table.Labels {
		column := strings.TrimSpace(label)
		for _, cell := range table.Cells[label] {
			item := strings.TrimSpace(cell)
			if item == "" {
				continue
			}
			rows = append(rows, models.ReferenceItem{
				Session: sessionID,
				Column:  column,
				Item:    item,
			})
		}
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: list contains no usable items", ErrInvalidState)
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, storageErr("insert reference items", err)
	}
	s.logger.Info("Loaded reference items",
		zap.String("session", sessionID),
		zap.Int("items", len(rows)),
		zap.Int("columns", len(table.Labels)),
	)
	return int64(len(rows)), nil
}

// FindReferenceItem looks up a token among the session's reference items.
// It returns nil when the token matches nothing. When the token matches more
// than one reference row the condition is logged and the first row by
// insertion order is returned with Ambiguous set.
func (s *Store) FindReferenceItem(ctx context.Context, sessionID, token string) (*Match, error) {
	var rows []models.ReferenceItem
	err := s.db.WithContext(ctx).
		Where(map[string]any{"session": sessionID, "item": token}).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, storageErr("find reference item", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows) > 1 {
		s.logger.Warn("Found more than one reference item for token",
			zap.String("session", sessionID),
			zap.String("item", token),
			zap.Int("matches", len(rows)),
		)
	}
	return &Match{
		ItemID:    rows[0].ID,
		Column:    rows[0].Column,
		Ambiguous: len(rows) > 1,
	}, nil
}

// RecordScan appends a scan event for the session. Recording an unmatched
// scan (itemID nil) is valid and expected.
func (s *Store) RecordScan(ctx context.Context, sessionID string, itemID *uint, token string) error {
	event := &models.ScanEvent{
		ItemID:          itemID,
		Session:         sessionID,
		Item:            token,
		ScannedDatetime: time.Now().Format(models.DatetimeFormat),
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return storageErr("record scan", err)
	}
	return nil
}

// ScannedEvents returns every scan event of the session joined to its
// reference item's column, ordered by timestamp then insertion order. Column
// is nil for unmatched events.
func (s *Store) ScannedEvents(ctx context.Context, sessionID string) ([]ScannedEvent, error) {
	var rows []ScannedEvent
	err := s.db.WithContext(ctx).
		Table("scan_event").
		Select("scan_event.scanned_datetime, scan_event.item, reference_item.`column` AS `column`").
		Joins("LEFT JOIN reference_item ON reference_item.id = scan_event.item_id").
		Where("scan_event.session = ?", sessionID).
		Order("scan_event.scanned_datetime, scan_event.id").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("list scanned events", err)
	}
	return rows, nil
}

// UnscannedReferenceItems returns the distinct (token, column) reference
// pairs whose token never appears among the session's scan events. Duplicate
// reference rows collapse to one entry.
func (s *Store) UnscannedReferenceItems(ctx context.Context, sessionID string) ([]UnscannedItem, error) {
	scanned := s.db.Table("scan_event").Select("item").Where("session = ?", sessionID)

	var rows []UnscannedItem
	err := s.db.WithContext(ctx).
		Table("reference_item").
		Select("DISTINCT item, `column`").
		Where("session = ?", sessionID).
		Where("item NOT IN (?)", scanned).
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("list unscanned reference items", err)
	}
	return rows, nil
}

// ListSessions returns every session ever recorded, in storage order.
func (s *Store) ListSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := s.db.WithContext(ctx).Find(&sessions).Error; err != nil {
		return nil, storageErr("list sessions", err)
	}
	return sessions, nil
}

// GetSession returns the session with the given id, or ErrNotFound.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, storageErr("get session", err)
	}
	return &session, nil
}

// CountReferenceItems returns the number of reference items loaded for the
// session. The count is set once at load time and constant afterwards.
func (s *Store) CountReferenceItems(ctx context.Context, sessionID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.ReferenceItem{}).
		Where("session = ?", sessionID).
		Count(&total).Error
	if err != nil {
		return 0, storageErr("count reference items", err)
	}
	return total, nil
}
