package vectorspace

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenRunes is the shortest word kept by the tokenizer.
const minTokenRunes = 2

// Analyzer turns raw text into the terms counted by the vector space:
// lower-cased words, stop words removed, then n-grams over what remains.
type Analyzer struct {
	stopWords map[string]struct{}
	ngramMin  int
	ngramMax  int
}

// NewAnalyzer creates an Analyzer. Invalid n-gram bounds fall back to unigrams.
func NewAnalyzer(stopWords map[string]struct{}, ngramMin, ngramMax int) Analyzer {
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	return Analyzer{stopWords: stopWords, ngramMin: ngramMin, ngramMax: ngramMax}
}

// Terms returns every term of text, in order of appearance, shortest n first.
func (a Analyzer) Terms(text string) []string {
	words := Tokenize(text)
	if len(a.stopWords) > 0 {
		kept := words[:0]
		for _, w := range words {
			if _, stop := a.stopWords[w]; !stop {
				kept = append(kept, w)
			}
		}
		words = kept
	}

	if a.ngramMax == 1 {
		return words
	}

	var terms []string
	if a.ngramMin == 1 {
		terms = append(terms, words...)
	}
	for n := max(a.ngramMin, 2); n <= a.ngramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

// Tokenize lower-cases text and splits it into words of at least two word
// characters (letters, digits, underscore). Everything else separates words.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	var words []string
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = appendWord(words, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		words = appendWord(words, text[start:])
	}
	return words
}

func appendWord(words []string, w string) []string {
	if utf8.RuneCountInString(w) < minTokenRunes {
		return words
	}
	return append(words, w)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
