// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"go4.org/mem"

	"github.com/creachadair/simpleon/internal/escape"
)

// Dump writes v to w in textual form. Lists and dicts are written in
// bracketed form with comma-separated members, dict members in ascending
// order of key with the key always quoted. Quoted and unquoted strings
// are both written as quoted literals; whitespace, comments, and
// multi-line quoting of the source are not reproduced.
func Dump(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	dumpValue(bw, v)
	return bw.Flush()
}

// DumpString returns the textual form of v, as written by Dump.
func DumpString(v Value) string {
	var sb strings.Builder
	Dump(&sb, v)
	return sb.String()
}

// Quote encodes src as a SimpleON string literal, adding the enclosing
// quotation marks and escaping as needed.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

func dumpValue(w *bufio.Writer, v Value) {
	switch t := v.(type) {
	case nil, Null:
		w.WriteString("null")
	case Bool:
		if t {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case Int:
		w.WriteString(strconv.FormatInt(int64(t), 10))
	case Float:
		w.WriteString(strconv.FormatFloat(float64(t), 'g', -1, 64))
	case String:
		w.Write(escape.Quote(mem.S(t.Text)))
	case *List:
		w.WriteByte('[')
		for i, elt := range t.Values {
			if i > 0 {
				w.WriteByte(',')
			}
			dumpValue(w, elt)
		}
		w.WriteByte(']')
	case *Dict:
		w.WriteByte('{')
		first := true
		for key, elt := range t.All() {
			if !first {
				w.WriteByte(',')
			}
			first = false
			w.Write(escape.Quote(mem.S(key)))
			w.WriteByte(':')
			dumpValue(w, elt)
		}
		w.WriteByte('}')
	}
}
