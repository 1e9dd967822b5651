// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon

import "regexp"

// A CommentExtractor feeds a Parser from the tails of lines matching a
// pattern. It picks SimpleON content out of the line comments of some
// other format: each line is matched against the pattern, the text after
// the first match is fed to the parser, and lines without a match are
// dropped.
type CommentExtractor struct {
	re *regexp.Regexp
	p  *Parser
}

// NewCommentExtractor constructs an extractor that feeds p with the text
// following the first match of re on each line.
func NewCommentExtractor(re *regexp.Regexp, p *Parser) *CommentExtractor {
	return &CommentExtractor{re: re, p: p}
}

// FeedLine matches line against the pattern and feeds the text after the
// match to the underlying parser. A line without a match is discarded.
func (c *CommentExtractor) FeedLine(line []byte) error {
	loc := c.re.FindIndex(line)
	if loc == nil {
		return nil
	}
	return c.p.Feed(line[loc[1]:])
}

// Seal seals the underlying parser.
func (c *CommentExtractor) Seal() error { return c.p.Seal() }

// Extract returns the next finished value from the underlying parser, or
// nil.
func (c *CommentExtractor) Extract() Value { return c.p.Extract() }
