// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package diag collects the diagnostics of one compile.
package diag

import (
	"fmt"
	"strings"

	"github.com/gogpu/translator/ir"
)

// Severity is the class of a diagnostic message.
type Severity uint8

const (
	SevWarning Severity = iota
	SevError
	SevInternalError
	SevUnimplemented
	SevNote
)

// Prefix returns the text a message of this severity starts with.
func (s Severity) Prefix() string {
	switch s {
	case SevWarning:
		return "WARNING: "
	case SevError:
		return "ERROR: "
	case SevInternalError:
		return "INTERNAL ERROR: "
	case SevUnimplemented:
		return "UNIMPLEMENTED: "
	case SevNote:
		return "NOTE: "
	default:
		return "UNKNOWN ERROR: "
	}
}

// Sink accumulates the info log of a compile. Errors are counted; the
// count is what callers check to decide whether a pass failed.
//
// The zero value is ready to use.
type Sink struct {
	b      strings.Builder
	errors int
	warns  int
}

// Message writes a located message of severity sev.
func (s *Sink) Message(sev Severity, loc ir.SourceLoc, msg string) {
	s.b.WriteString(sev.Prefix())
	s.location(loc)
	s.b.WriteString(msg)
	s.b.WriteByte('\n')

	switch sev {
	case SevError, SevInternalError:
		s.errors++
	case SevWarning:
		s.warns++
	}
}

// Error writes "<token> : <reason> <extra>" as an error and counts it.
func (s *Sink) Error(loc ir.SourceLoc, reason, token, extra string) {
	s.Message(SevError, loc, format(reason, token, extra))
}

// Warning writes a warning in the same format as Error.
func (s *Sink) Warning(loc ir.SourceLoc, reason, token, extra string) {
	s.Message(SevWarning, loc, format(reason, token, extra))
}

// Errorf writes a formatted error without a token.
func (s *Sink) Errorf(loc ir.SourceLoc, f string, args ...any) {
	s.Message(SevError, loc, fmt.Sprintf(f, args...))
}

// Internal records a failed consistency check.
func (s *Sink) Internal(loc ir.SourceLoc, msg string) {
	s.Message(SevInternalError, loc, msg)
}

// Raw appends text to the log without a prefix.
func (s *Sink) Raw(text string) {
	s.b.WriteString(text)
}

// ErrorCount returns the number of errors recorded.
func (s *Sink) ErrorCount() int { return s.errors }

// WarningCount returns the number of warnings recorded.
func (s *Sink) WarningCount() int { return s.warns }

// String returns the log text.
func (s *Sink) String() string { return s.b.String() }

// Reset clears the log and the counters.
func (s *Sink) Reset() {
	s.b.Reset()
	s.errors = 0
	s.warns = 0
}

func (s *Sink) location(loc ir.SourceLoc) {
	if loc.FirstLine == 0 && loc.FirstFile == 0 {
		return
	}
	fmt.Fprintf(&s.b, "%d:%d: ", loc.FirstFile, loc.FirstLine)
}

func format(reason, token, extra string) string {
	var b strings.Builder
	b.WriteByte('\'')
	b.WriteString(token)
	b.WriteString("' : ")
	b.WriteString(reason)
	if extra != "" {
		b.WriteByte(' ')
		b.WriteString(extra)
	}
	return b.String()
}
