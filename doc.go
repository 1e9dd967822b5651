// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package simpleon implements a streaming push parser for SimpleON, a
// human-friendly JSON-like data format. SimpleON extends the JSON data
// model with unquoted string tokens (bare words), line comments
// introduced by "#", triple-quoted strings spanning multiple lines,
// optional commas between members, and optional automatic typing of
// bare words.
//
// # Feeding
//
// The Parser consumes input as a sequence of byte fragments, typically
// lines. Fragments need not align with token boundaries: strings and
// escapes may arrive split across fragments, and the parser keeps its
// position across calls. Call Feed with each fragment, then Extract to
// collect finished top-level values:
//
//	p := simpleon.NewParser(true, false)
//	for sc.Scan() {
//	   if err := p.Feed(sc.Bytes()); err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	}
//	if err := p.Seal(); err != nil {
//	   log.Fatalf("Input incomplete: %v", err)
//	}
//	v := p.Extract()
//
// Feed reports an error of type [*StructuralError] for input that
// violates the grammar and [*BadEscapeError] for a malformed \x escape.
// After an error the parser is terminal: remaining input is refused,
// though values already completed may still be extracted.
//
// Line-based callers feed lines without their trailing newlines. Inside
// a triple-quoted string each fragment boundary stands for one newline,
// so the string rejoins exactly as it appeared in the source.
//
// To read a whole stream at once, use [Parse] or [ParseSingle].
//
// # Values
//
// A parsed tree is made of [Value] nodes: Null, Bool, Int, Float,
// String, List, and Dict. A String records whether it was quoted; bare
// words that convert to none of the scalar types surface as unquoted
// strings. Dict members are kept in ascending order of key, and a
// repeated key replaces the earlier member.
//
// The As* accessors return the payload of a matching node or a zero
// default, so an expected shape can be walked without per-node checks:
//
//	name := simpleon.AsString(simpleon.AsDict(v).Find("name"))
//
// # Dumping
//
// [Dump] writes a value tree in a canonical single-line form with all
// strings quoted and dict keys in ascending order. The output is
// machine-readable SimpleON (and, for trees without exotic control
// bytes or infinite or NaN floats, plain JSON); source whitespace and
// comments are not preserved.
package simpleon
