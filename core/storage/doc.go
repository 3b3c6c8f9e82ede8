// Package storage provides the object storage client used to archive session
// reports. It wraps the MinIO SDK behind a small interface so the report
// exporter can be tested against a mock client.
package storage
