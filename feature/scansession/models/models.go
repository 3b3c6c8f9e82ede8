package models

// DatetimeFormat is the layout used for every persisted timestamp and for
// timestamps in exported reports.
const DatetimeFormat = "2006-01-02 15:04:05"

// Session represents one load-list-and-scan episode. A session is created
// when a list file is loaded and is never updated afterwards; reference items
// and scan events reference it by id.
type Session struct {
	ID       string `gorm:"column:id;primaryKey" json:"id"`
	Filename string `gorm:"column:filename" json:"filename"`
	Datetime string `gorm:"column:datetime" json:"datetime"`
}

// TableName overrides the table name used by GORM.
func (Session) TableName() string {
	return "session"
}

// ReferenceItem is one cell from a loaded inventory list, tagged with the
// column it came from. The same token may appear in several columns of one
// session; that is a supported ambiguous-reference state, not an error.
type ReferenceItem struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Session string `gorm:"column:session;index" json:"session"`
	Column  string `gorm:"column:column" json:"column"`
	Item    string `gorm:"column:item;index" json:"item"`
}

// TableName overrides the table name used by GORM.
func (ReferenceItem) TableName() string {
	return "reference_item"
}

// ScanEvent records one physical scan action. Every scan is persisted,
// including repeats and tokens that matched nothing; ItemID is nil for
// unmatched scans.
type ScanEvent struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID          *uint  `gorm:"column:item_id" json:"item_id"`
	Session         string `gorm:"column:session;index" json:"session"`
	Item            string `gorm:"column:item" json:"item"`
	ScannedDatetime string `gorm:"column:scanned_datetime" json:"scanned_datetime"`
}

// TableName overrides the table name used by GORM.
func (ScanEvent) TableName() string {
	return "scan_event"
}
