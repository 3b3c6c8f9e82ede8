// Package models defines the persisted row types of the scanning engine:
// session, reference_item, and scan_event. Timestamps are stored as text in
// DatetimeFormat so the database stays trivially inspectable with any SQLite
// browser.
package models
