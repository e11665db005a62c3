// SPDX-License-Identifier: MIT
// Package: bspgraph/badgerstore
//
// logger.go — routes badger's internal logging to slog.

package badgerstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// slogAdapter implements badger.Logger.
type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) log(level slog.Level, format string, args ...interface{}) {
	if !a.l.Enabled(context.Background(), level) {
		return
	}
	a.l.Log(context.Background(), level, strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (a slogAdapter) Errorf(format string, args ...interface{}) {
	a.log(slog.LevelError, format, args...)
}

func (a slogAdapter) Warningf(format string, args ...interface{}) {
	a.log(slog.LevelWarn, format, args...)
}

// Infof is demoted to debug: badger reports compactions and flushes at info.
func (a slogAdapter) Infof(format string, args ...interface{}) {
	a.log(slog.LevelDebug, format, args...)
}

func (a slogAdapter) Debugf(format string, args ...interface{}) {
	a.log(slog.LevelDebug, format, args...)
}
