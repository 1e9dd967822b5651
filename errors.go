// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon

import (
	"fmt"

	"github.com/creachadair/simpleon/internal/escape"
)

// A StructuralError reports an input byte that has no rule in the state
// the parser was in, or a value left unfinished at Seal. After a
// StructuralError the parser is terminal: it accepts no further input,
// and only the emission queue remains usable.
type StructuralError struct {
	Pos     int // byte offset in the input, 0-based
	Message string
}

// Error satisfies the error interface.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Pos, e.Message)
}

// A BadEscapeError reports a \x escape that was not followed by two
// hexadecimal digits. Like a StructuralError it leaves the parser
// terminal.
type BadEscapeError struct {
	Pos int // byte offset of the backslash, 0-based
}

// Error satisfies the error interface.
func (e *BadEscapeError) Error() string {
	return fmt.Sprintf("at offset %d: %v", e.Pos, escape.ErrBadEscape)
}

// Unwrap supports error wrapping.
func (e *BadEscapeError) Unwrap() error { return escape.ErrBadEscape }

// An InternalError reports a violation of a parser invariant. It is not
// producible by any input.
type InternalError struct {
	Message string
}

// Error satisfies the error interface.
func (e *InternalError) Error() string { return "internal error: " + e.Message }
