// Package proxylog defines the minimal logging seam the proxy runtime
// writes operational messages through (accept errors, connection
// teardown, keepalive tuning failures). It is deliberately a
// one-method interface, the same shape as fasthttp.Logger, so that any
// caller's existing logger can be adapted without this module pulling in
// a logging framework.
package proxylog

import "log"

// Logger is satisfied by *log.Logger and by most structured loggers'
// printf-style adapters.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Std adapts the standard library's *log.Logger to Logger.
func Std(l *log.Logger) Logger {
	return stdAdapter{l}
}

type stdAdapter struct{ l *log.Logger }

func (s stdAdapter) Printf(format string, args ...interface{}) {
	s.l.Printf(format, args...)
}
