// Package logger builds the application's zap logger.
//
// The logger is configured through logger.Config (level and encoding) and is
// installed as the global zap logger by the CLI commands. Helpers attach
// request and session scoped fields so log lines from the scanning engine can
// be correlated with the HTTP request or scanning session that produced them.
package logger
