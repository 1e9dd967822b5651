// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon

import (
	"strconv"

	"go4.org/mem"
)

// typeWord converts a completed bare word into a value. With convert
// enabled, a word with a numeric lead byte that parses completely as an
// integer or a float becomes that number, and the words null, true, and
// false become the corresponding constants. Any other word, and every
// word when convert is disabled, becomes an unquoted string.
//
// The state machine never produces an empty word.
func typeWord(word []byte, convert bool) Value {
	if convert {
		if isNumLead[word[0]] {
			if z, err := strconv.ParseInt(string(word), 10, 64); err == nil {
				return Int(z)
			}
			if f, err := strconv.ParseFloat(string(word), 64); err == nil {
				return Float(f)
			}
		}
		switch w := mem.B(word); {
		case w.EqualString("null"):
			return Null{}
		case w.EqualString("true"):
			return Bool(true)
		case w.EqualString("false"):
			return Bool(false)
		}
	}
	return String{Text: string(word)}
}
