package ml

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// minTokenLen is the shortest token, in runes, kept by the analyzer
const minTokenLen = 2

// analyzer turns raw text into the list of terms (word n-grams) counted by
// the vectorizer.
type analyzer struct {
	ngramMin  int
	ngramMax  int
	stopWords map[string]struct{}
}

func newAnalyzer(ngramMin, ngramMax int, removeStopWords bool) *analyzer {
	a := &analyzer{ngramMin: ngramMin, ngramMax: ngramMax}
	if removeStopWords {
		a.stopWords = englishStopWords
	}
	return a
}

// analyze lowercases, tokenizes, drops stop words and emits n-grams
func (a *analyzer) analyze(text string) []string {
	tokens := a.tokenize(text)
	if len(a.stopWords) > 0 {
		kept := tokens[:0]
		for _, tok := range tokens {
			if _, stop := a.stopWords[tok]; !stop {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	}
	return a.ngrams(tokens)
}

// tokenize splits text on runs of word characters, keeping tokens of at
// least minTokenLen runes.
func (a *analyzer) tokenize(text string) []string {
	text = strings.ToLower(norm.NFC.String(text))

	var tokens []string
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenLen {
			tokens = append(tokens, text[start:end])
		}
		start = -1
		runes = 0
	}
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(text))
	return tokens
}

func (a *analyzer) ngrams(tokens []string) []string {
	if a.ngramMax == 1 {
		return tokens
	}

	var terms []string
	if a.ngramMin == 1 {
		terms = append(terms, tokens...)
	}
	minN := a.ngramMin
	if minN < 2 {
		minN = 2
	}
	for n := minN; n <= a.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
