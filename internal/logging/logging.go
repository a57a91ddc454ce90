// Package logging builds the slog logger shared by the CLI and its helpers.
// Diagnostics go to stderr; stdout carries results only.
package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// New returns a text logger writing to dst. verbose enables debug records,
// quiet drops everything below warnings; quiet wins when both are set.
func New(dst io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(dst, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

// BadgerAdapter satisfies badger.Logger on top of slog. Badger is chatty at
// info level, so its info and debug output both map to debug.
type BadgerAdapter struct {
	log *slog.Logger
}

// NewBadgerAdapter wraps log; a nil log discards.
func NewBadgerAdapter(log *slog.Logger) *BadgerAdapter {
	if log == nil {
		log = Discard()
	}
	return &BadgerAdapter{log: log.With("component", "badger")}
}

func (a *BadgerAdapter) Errorf(format string, args ...interface{}) {
	a.log.Error(trim(fmt.Sprintf(format, args...)))
}

func (a *BadgerAdapter) Warningf(format string, args ...interface{}) {
	a.log.Warn(trim(fmt.Sprintf(format, args...)))
}

func (a *BadgerAdapter) Infof(format string, args ...interface{}) {
	a.log.Debug(trim(fmt.Sprintf(format, args...)))
}

func (a *BadgerAdapter) Debugf(format string, args ...interface{}) {
	a.log.Debug(trim(fmt.Sprintf(format, args...)))
}

func trim(s string) string {
	for len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	return s
}
