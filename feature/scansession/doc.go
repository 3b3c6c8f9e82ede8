// Package scansession implements the session/matching engine: it ingests a
// tabular reference list into a searchable item index, matches incoming scan
// tokens against it, tracks completion progress, and produces an auditable
// reconciliation report of matched and unmatched items.
//
// All state is scoped to a named session and durably persisted, so historical
// sessions can be re-exported at any time.
//
// # Components
//
//   - Store: durable persistence of sessions, reference items, and scan
//     events on GORM (SQLite by default).
//   - Service.Scan: matches one token, records the scan event (matched or
//     not), and recomputes progress from the event history.
//   - Service.ImportPositionalScans: adapts a position-aware scan source
//     (e.g. a FluidX rack export) into ordered Scan calls, keeping position
//     metadata for logging only.
//   - Service.WriteReport: the semicolon-delimited reconciliation report,
//     matched events first, never scanned reference items after.
//   - Handler: the HTTP surface registered by the start command.
//
// # Semantics worth knowing
//
// A token that appears in several columns is an ambiguous match: the engine
// logs it and deterministically uses the first row by insertion order. Every
// physical scan action is recorded, including repeats and unmatched tokens;
// progress counts distinct matched (token, column) pairs only, recomputed
// from the event log so no independent counter can drift.
package scansession
