// Package report holds configuration for where session reconciliation
// reports are written: a local output folder, and optionally an object
// storage bucket keyed under a configurable prefix.
package report
