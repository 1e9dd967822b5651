// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program simpleon reads SimpleON text from stdin or a file, line by
// line, and writes each parsed top-level value to stdout in canonical
// form. Parse errors are reported to stderr with their line number.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/creachadair/simpleon"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	var filename string
	var multi, noconvert bool
	var commentRE string

	useColors := isatty.IsTerminal(os.Stderr.Fd())
	flag.BoolFunc("colors", "force using colors", func(string) error {
		useColors = true
		return nil
	})
	flag.BoolFunc("nocolors", "disable colors", func(string) error {
		useColors = false
		return nil
	})
	flag.StringVar(&filename, "file", "", "input filename (stdin if omitted)")
	flag.BoolVar(&multi, "multi", false, "accept multiple top-level values")
	flag.BoolVar(&noconvert, "noconvert", false, "keep bare words as strings")
	flag.StringVar(&commentRE, "comment", "",
		"parse only line tails after this pattern (extract values embedded in comments)")
	flag.Parse()

	var stderr io.Writer = os.Stderr
	if useColors {
		stderr = colorable.NewColorableStderr()
	}

	var input io.Reader = os.Stdin
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			fatalError("error opening %q: %s", filename, err)
		}
		defer f.Close()
		input = f
	}

	p := simpleon.NewParser(!noconvert, multi)
	feed := p.Feed
	seal := p.Seal
	if commentRE != "" {
		re, err := regexp.Compile(commentRE)
		if err != nil {
			fatalError("invalid -comment pattern: %s", err)
		}
		ce := simpleon.NewCommentExtractor(re, p)
		feed = ce.FeedLine
		seal = ce.Seal
	}

	sc := bufio.NewScanner(input)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		if err := feed(sc.Bytes()); err != nil {
			reportError(stderr, useColors, lineNum, err)
			break
		}
	}
	if err := sc.Err(); err != nil {
		fatalError("error reading input: %s", err)
	}
	if err := seal(); err != nil {
		reportError(stderr, useColors, lineNum, err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for {
		v := p.Extract()
		if v == nil {
			break
		}
		simpleon.Dump(out, v)
		out.WriteByte('\n')
	}
}

func reportError(w io.Writer, colors bool, line int, err error) {
	if colors {
		fmt.Fprintf(w, "%sparse error at line %d:%s %s\n", brightRed, line, reset, err)
	} else {
		fmt.Fprintf(w, "parse error at line %d: %s\n", line, err)
	}
}

func fatalError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// Some color ANSI codes.
var (
	reset     = "\033[0m"
	brightRed = "\033[31;1m"
)
