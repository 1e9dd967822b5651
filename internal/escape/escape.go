// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles decoding of SimpleON string escapes and quoting
// of strings for output.
package escape

import (
	"errors"

	"go4.org/mem"
)

// ErrIncomplete is reported by Decode when src ends before the escape
// sequence is complete. The caller should retry once more input is
// available.
var ErrIncomplete = errors.New("incomplete escape sequence")

// ErrBadEscape is reported by Decode for a \x escape that is not followed
// by two hexadecimal digits.
var ErrBadEscape = errors.New(`invalid \x escape`)

// hexVal maps a byte to its hexadecimal digit value. Bytes that are not
// hex digits map to the sentinel 0xff.
var hexVal [256]byte

func init() {
	for i := range hexVal {
		hexVal[i] = 0xff
	}
	for b := byte('0'); b <= '9'; b++ {
		hexVal[b] = b - '0'
	}
	for b := byte('a'); b <= 'f'; b++ {
		hexVal[b] = b - 'a' + 10
	}
	for b := byte('A'); b <= 'F'; b++ {
		hexVal[b] = b - 'A' + 10
	}
}

// Decode interprets a single backslash escape. The src window begins at
// the byte immediately following the backslash. It returns the bytes to
// append to the string under construction and the number of input bytes
// consumed from src.
//
// An unrecognized escape yields a literal backslash with no input
// consumed; the byte after the backslash is left for the caller to
// process as ordinary text. Decode reports ErrIncomplete if src ends
// before the escape is complete, and ErrBadEscape if a \x escape is not
// followed by two hex digits.
func Decode(src mem.RO) ([]byte, int, error) {
	if src.Len() == 0 {
		return nil, 0, ErrIncomplete
	}
	switch b := src.At(0); b {
	case 'n':
		return []byte{'\n'}, 1, nil
	case 't':
		return []byte{'\t'}, 1, nil
	case 'r':
		return []byte{'\r'}, 1, nil
	case 'f':
		return []byte{'\f'}, 1, nil
	case '"', '\\', '/':
		return []byte{b}, 1, nil
	case 'x':
		if src.Len() < 3 {
			return nil, 0, ErrIncomplete
		}
		hi, lo := hexVal[src.At(1)], hexVal[src.At(2)]
		if hi == 0xff || lo == 0xff {
			return nil, 0, ErrBadEscape
		}
		return []byte{hi<<4 | lo}, 3, nil
	default:
		return []byte{'\\'}, 0, nil
	}
}

var controlEsc = [...]byte{
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as a quoted string literal, adding the enclosing
// double quotation marks. Control bytes without a named escape are
// written as \x escapes.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		switch {
		case b == '"' || b == '\\':
			buf = append(buf, '\\', b)
		case b < ' ':
			if e := controlEsc[b]; e != 0 {
				buf = append(buf, '\\', e)
			} else {
				buf = append(buf, '\\', 'x', hexDigit[b>>4], hexDigit[b&15])
			}
		default:
			buf = append(buf, b)
		}
	}
	return append(buf, '"')
}
