// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon

import (
	"bufio"
	"fmt"
	"io"
)

// Parse reads SimpleON values from r and returns them in order of
// appearance. Input is consumed line by line; each line is one fragment,
// so multi-line strings rejoin their newlines. Bare words are typed
// when convert is set. In case of error, any values already completed
// are returned along with the error.
func Parse(r io.Reader, convert bool) ([]Value, error) {
	p := NewParser(convert, true)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if err := p.Feed(sc.Bytes()); err != nil {
			return drain(p), err
		}
	}
	if err := sc.Err(); err != nil {
		return drain(p), fmt.Errorf("read input: %w", err)
	}
	if err := p.Seal(); err != nil {
		return drain(p), err
	}
	return drain(p), nil
}

// ParseSingle reads one SimpleON value from r. It is an error if no
// value is present.
func ParseSingle(r io.Reader, convert bool) (Value, error) {
	vs, err := Parse(r, convert)
	if err != nil {
		return nil, err
	} else if len(vs) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return vs[0], nil
}

func drain(p *Parser) []Value {
	var vs []Value
	for {
		v := p.Extract()
		if v == nil {
			return vs
		}
		vs = append(vs, v)
	}
}
