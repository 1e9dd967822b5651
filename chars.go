// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon

// isSpecial marks the bytes that delimit bare words and structural
// tokens. A bare word is a maximal run of non-special bytes.
var isSpecial [256]bool

// isNumLead marks the bytes that may begin a numeric literal. A bare
// word starting with one of these is offered to the number parsers
// before the constant and string rules apply.
var isNumLead [256]bool

func init() {
	for _, b := range []byte(" \t[]{}:\",#") {
		isSpecial[b] = true
	}
	for _, b := range []byte("+-.0123456789") {
		isNumLead[b] = true
	}
}
