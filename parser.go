// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon

import (
	"fmt"

	"go4.org/mem"

	"github.com/creachadair/simpleon/internal/escape"
)

// state is the label of a parse frame.
type state byte

const (
	elementStart    state = iota // awaiting the next value
	elementEnd                   // a completed value awaits attachment
	dictPreKey                   // inside a dict, awaiting a key or "}"
	dictKey                      // the child being parsed will become a key
	dictPostKey                  // key captured, awaiting ":"
	dictValue                    // the child being parsed will become a dict value
	dictPostValue                // awaiting ",", "}", or an implicit key start
	inList                       // inside a list, awaiting a value, ",", or "]"
	quotedString                 // inside "..."
	multilineString              // inside """..."""
)

var stateStr = [...]string{
	elementStart:    "element start",
	elementEnd:      "element end",
	dictPreKey:      "dict pre-key",
	dictKey:         "dict key",
	dictPostKey:     "dict post-key",
	dictValue:       "dict value",
	dictPostValue:   "dict post-value",
	inList:          "list",
	quotedString:    "quoted string",
	multilineString: "multi-line string",
}

func (s state) String() string {
	v := int(s)
	if v >= len(stateStr) {
		return "invalid state"
	}
	return stateStr[v]
}

// A frame pairs a machine state with the data it is building: the
// container or completed child in v, the string accumulator in sb, and
// the pending key of a dict frame between its post-key and value phases.
type frame struct {
	st  state
	v   Value
	sb  []byte
	key string
}

// compactThreshold is the consumed-prefix size beyond which the parse
// buffer is compacted. Steady-state memory is bounded by the threshold
// plus the longest in-flight string.
const compactThreshold = 4096

// A Parser consumes byte fragments of SimpleON input and builds finished
// top-level values. Fragments need no framing; line-based callers feed
// successive lines without their newlines, and the multi-line string
// state restores a newline at each fragment boundary.
//
// A Parser must be used from a single goroutine.
type Parser struct {
	buf   []byte
	pos   int // read cursor, pos <= len(buf)
	base  int // input offset of buf[0], for error positions
	stack []frame
	queue []Value // finished values awaiting extraction

	convert bool
	multi   bool
	sealed  bool
	err     error // terminal parse error, once set
}

// NewParser constructs a parser. With convert set, bare words are
// automatically typed as null, Boolean, integer, or floating-point
// values where they parse as such. With multi set, the input stream may
// carry any number of concatenated top-level values; otherwise input
// after the first value is ignored.
func NewParser(convert, multi bool) *Parser {
	return &Parser{
		convert: convert,
		multi:   multi,
		stack:   []frame{{st: elementStart}},
	}
}

// Feed appends fragment to the parse buffer and advances the machine
// until it needs more input. Completed top-level values are queued for
// Extract. After Seal, Feed is a no-op; after a parse error, Feed
// returns that same error without consuming input.
func (p *Parser) Feed(fragment []byte) error {
	if p.sealed {
		return nil
	}
	if p.err != nil {
		return p.err
	}
	if len(p.stack) == 0 {
		return nil // single-document mode: input after the value is ignored
	}
	p.buf = append(p.buf, fragment...)
	return p.run()
}

// FeedString is shorthand for Feed with a string fragment.
func (p *Parser) FeedString(fragment string) error { return p.Feed([]byte(fragment)) }

// Seal marks the end of input. Transient parse state is released; the
// emission queue is kept for Extract. If a string or container was
// still unfinished, the first call reports a StructuralError, unless
// Feed has already reported a parse error. Seal is idempotent.
func (p *Parser) Seal() error {
	if p.sealed {
		return nil
	}
	p.sealed = true

	var err error
	if p.err == nil && (len(p.stack) > 1 || len(p.stack) == 1 && p.stack[0].st != elementStart) {
		open := p.stack[len(p.stack)-1].st
		for i := len(p.stack) - 1; i >= 0; i-- {
			if p.stack[i].st != elementStart {
				open = p.stack[i].st
				break
			}
		}
		err = &StructuralError{
			Pos:     p.base + p.pos,
			Message: fmt.Sprintf("unfinished %v at end of input", open),
		}
	}
	p.buf = nil
	p.pos = 0
	p.stack = nil
	return err
}

// Extract returns the oldest finished top-level value, or nil if none is
// pending. The caller becomes the sole owner of the returned value.
func (p *Parser) Extract() Value {
	if len(p.queue) == 0 {
		return nil
	}
	v := p.queue[0]
	p.queue = p.queue[1:]
	return v
}

// run advances the machine until the buffer is exhausted, a state needs
// more input, or the stack drains after a single-document value.
func (p *Parser) run() error {
	for len(p.stack) > 0 {
		if p.pos > compactThreshold {
			p.base += p.pos
			p.buf = append(p.buf[:0], p.buf[p.pos:]...)
			p.pos = 0
		}

		var more bool
		var err error
		switch fr := &p.stack[len(p.stack)-1]; fr.st {
		case elementStart:
			more, err = p.elementStart()
		case elementEnd:
			more, err = p.elementEnd()
		case dictPreKey:
			more, err = p.dictPreKey(fr)
		case dictPostKey:
			more, err = p.dictPostKey(fr)
		case dictPostValue:
			more, err = p.dictPostValue(fr)
		case inList:
			more, err = p.list(fr)
		case quotedString:
			more, err = p.quoted(fr)
		case multilineString:
			more, err = p.multiline(fr)
		default:
			err = &InternalError{Message: "cannot resume in state " + fr.st.String()}
		}
		if err != nil {
			p.err = err
			return err
		}
		if !more {
			return nil
		}
	}
	return nil
}

// skipSpace advances the cursor past spaces and tabs.
func (p *Parser) skipSpace() {
	for p.pos < len(p.buf) && (p.buf[p.pos] == ' ' || p.buf[p.pos] == '\t') {
		p.pos++
	}
}

func (p *Parser) elementStart() (bool, error) {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return false, nil
	}
	fr := &p.stack[len(p.stack)-1]
	switch b := p.buf[p.pos]; {
	case b == '{':
		fr.st = dictPreKey
		fr.v = NewDict()
		p.pos++

	case b == '[':
		fr.st = inList
		fr.v = new(List)
		p.pos++

	case b == '"':
		if p.pos+2 < len(p.buf) && p.buf[p.pos+1] == '"' && p.buf[p.pos+2] == '"' {
			fr.st = multilineString
			p.pos += 3
		} else {
			fr.st = quotedString
			p.pos++
		}

	case b == '#':
		p.pos = len(p.buf)

	case !isSpecial[b]:
		s := p.pos + 1
		for s < len(p.buf) && !isSpecial[p.buf[s]] {
			s++
		}
		convert := p.convert
		if len(p.stack) > 1 && p.stack[len(p.stack)-2].st == dictKey {
			convert = false // dict keys remain plain strings
		}
		fr.st = elementEnd
		fr.v = typeWord(p.buf[p.pos:s], convert)
		p.pos = s

	default:
		return false, &StructuralError{Pos: p.base + p.pos, Message: fmt.Sprintf("unexpected %q", b)}
	}
	return true, nil
}

// elementEnd pops the completed value and attaches it to its parent, or
// queues it for extraction if it was a top-level value.
func (p *Parser) elementEnd() (bool, error) {
	v := p.stack[len(p.stack)-1].v
	p.stack = p.stack[:len(p.stack)-1]

	if len(p.stack) == 0 {
		p.queue = append(p.queue, v)
		if p.multi {
			p.stack = append(p.stack, frame{st: elementStart})
		}
		return true, nil
	}

	switch fr := &p.stack[len(p.stack)-1]; fr.st {
	case dictKey:
		s, ok := v.(String)
		if !ok {
			return false, &InternalError{Message: fmt.Sprintf("dict key is a %v, not a string", v.Type())}
		}
		fr.key = s.Text
		fr.st = dictPostKey
	case dictValue:
		fr.v.(*Dict).Set(fr.key, v)
		fr.key = ""
		fr.st = dictPostValue
	case inList:
		fr.v.(*List).Values = append(fr.v.(*List).Values, v)
	default:
		return false, &InternalError{Message: "cannot attach element in state " + fr.st.String()}
	}
	return true, nil
}

func (p *Parser) dictPreKey(fr *frame) (bool, error) {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return false, nil
	}
	switch b := p.buf[p.pos]; {
	case b == '"' || !isSpecial[b]:
		fr.st = dictKey
		p.stack = append(p.stack, frame{st: elementStart})
	case b == '}':
		fr.st = elementEnd
		p.pos++
	case b == '#':
		p.pos = len(p.buf)
	default:
		return false, &StructuralError{Pos: p.base + p.pos, Message: fmt.Sprintf("expected dict key or %q, got %q", '}', b)}
	}
	return true, nil
}

func (p *Parser) dictPostKey(fr *frame) (bool, error) {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return false, nil
	}
	switch b := p.buf[p.pos]; b {
	case ':':
		fr.st = dictValue
		p.pos++
		p.stack = append(p.stack, frame{st: elementStart})
	case '#':
		p.pos = len(p.buf)
	default:
		return false, &StructuralError{Pos: p.base + p.pos, Message: fmt.Sprintf("expected %q, got %q", ':', b)}
	}
	return true, nil
}

func (p *Parser) dictPostValue(fr *frame) (bool, error) {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return false, nil
	}
	switch b := p.buf[p.pos]; {
	case b == '"' || !isSpecial[b]:
		fr.st = dictPreKey // implicit start of the next key
	case b == ',':
		fr.st = dictPreKey
		p.pos++
	case b == '}':
		fr.st = elementEnd
		p.pos++
	case b == '#':
		p.pos = len(p.buf)
	default:
		return false, &StructuralError{Pos: p.base + p.pos, Message: fmt.Sprintf("expected %q, %q, or a key, got %q", ',', '}', b)}
	}
	return true, nil
}

func (p *Parser) list(fr *frame) (bool, error) {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		return false, nil
	}
	switch p.buf[p.pos] {
	case ']':
		fr.st = elementEnd
		p.pos++
	case ',':
		p.pos++
		p.stack = append(p.stack, frame{st: elementStart})
	case '#':
		p.pos = len(p.buf)
	default:
		// Implicit start of the next element.
		p.stack = append(p.stack, frame{st: elementStart})
	}
	return true, nil
}

func (p *Parser) quoted(fr *frame) (bool, error) {
	s := p.pos
	for s < len(p.buf) && p.buf[s] != '"' && p.buf[s] != '\\' {
		s++
	}
	fr.sb = append(fr.sb, p.buf[p.pos:s]...)
	p.pos = s
	if s == len(p.buf) {
		return false, nil // the string stays open awaiting more input
	}
	if p.buf[s] == '\\' {
		return p.applyEscape(fr)
	}
	p.pos = s + 1
	p.finishString(fr)
	return true, nil
}

func (p *Parser) multiline(fr *frame) (bool, error) {
	s := p.pos
	for s < len(p.buf) && p.buf[s] != '"' && p.buf[s] != '\\' {
		s++
	}
	fr.sb = append(fr.sb, p.buf[p.pos:s]...)
	p.pos = s
	if s == len(p.buf) {
		// Fragment boundary: restore the newline between source lines.
		fr.sb = append(fr.sb, '\n')
		return false, nil
	}
	if p.buf[s] == '\\' {
		return p.applyEscape(fr)
	}
	if s+2 < len(p.buf) && p.buf[s+1] == '"' && p.buf[s+2] == '"' {
		p.pos = s + 3
		p.finishString(fr)
		return true, nil
	}
	fr.sb = append(fr.sb, '"')
	p.pos = s + 1
	return true, nil
}

func (p *Parser) finishString(fr *frame) {
	fr.st = elementEnd
	fr.v = String{Text: string(fr.sb), Quoted: true}
	fr.sb = nil
}

// applyEscape decodes the escape at the cursor, which rests on the
// backslash. If the escape is split across a fragment boundary the
// cursor is left on the backslash to resume when more input arrives.
func (p *Parser) applyEscape(fr *frame) (bool, error) {
	out, n, err := escape.Decode(mem.B(p.buf[p.pos+1:]))
	switch err {
	case nil:
		fr.sb = append(fr.sb, out...)
		p.pos += 1 + n
		return true, nil
	case escape.ErrIncomplete:
		return false, nil
	default:
		return false, &BadEscapeError{Pos: p.base + p.pos}
	}
}
