package nlp

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// token is one preprocessed word: the surface form as it appeared in the text
// (lowercased) and its stem, which is what all matching runs on.
type token struct {
	Surface string
	Stem    string
}

// tokenize lowercases, splits on non-word runes and drops stop words and
// single characters. '+', '#' and interior '.' count as word characters so
// terms like c++, c# and node.js survive intact.
func tokenize(text string) []token {
	if text == "" {
		return nil
	}

	out := make([]token, 0, 64)
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		word := strings.TrimRight(b.String(), ".")
		b.Reset()
		if len([]rune(word)) <= 1 || isStopWord(word) {
			return
		}
		out = append(out, token{Surface: word, Stem: stem(word)})
	}

	for _, r := range text {
		r = unicode.ToLower(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return out
}

// stem reduces a word to its snowball stem. Words carrying symbol characters
// are technology names (c++, node.js) and pass through unchanged.
func stem(word string) string {
	if strings.ContainsAny(word, "+#.0123456789") {
		return word
	}
	return english.Stem(word, false)
}

func stems(tokens []token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Stem
	}
	return out
}
