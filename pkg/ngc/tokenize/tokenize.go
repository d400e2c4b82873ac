// Package tokenize splits raw text into lines of word tokens.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextStats holds whole-input counters for reporting.
type TextStats struct {
	Chars int // runes in the raw input
	Lines int // line-split segments, blank lines included
	Words int // tokens across all kept lines
}

// Result is the tokenized form of one input.
type Result struct {
	Lines [][]string // token sequence per non-blank line
	Stats TextStats
}

// Tokenize splits text into lines, then each line into word tokens.
// A token is a maximal run of letters, digits, or hyphens; every other
// character acts as a separator. Case is preserved.
func Tokenize(text string) Result {
	res := Result{Stats: TextStats{Chars: utf8.RuneCountInString(text)}}

	for _, line := range splitLines(text) {
		res.Stats.Lines++
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens := lineTokens(line)
		if len(tokens) == 0 {
			continue
		}
		res.Stats.Words += len(tokens)
		res.Lines = append(res.Lines, tokens)
	}

	return res
}

// splitLines splits on \r\n, \r, and \n.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// lineTokens extracts word tokens from a single line.
func lineTokens(line string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}
