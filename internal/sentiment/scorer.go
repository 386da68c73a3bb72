package sentiment

import (
	"context"
	"strings"
	"unicode"

	"stocksense/internal/interfaces"
	"stocksense/internal/types"
)

// LexiconScorer sums lexicon weights over the tokens of a text.
// Positive/negative counts are the number of tokens that contributed a
// positive/negative weight; every other token counts as neutral.
type LexiconScorer struct {
	lexicon  Lexicon
	negation bool
}

var _ interfaces.Scorer = (*LexiconScorer)(nil)

// Option configures a LexiconScorer
type Option func(*LexiconScorer)

// WithLexicon layers extra entries over the default lexicon
func WithLexicon(extra Lexicon) Option {
	return func(s *LexiconScorer) {
		s.lexicon = s.lexicon.Merge(extra)
	}
}

// WithOnlyLexicon replaces the default lexicon entirely
func WithOnlyLexicon(lex Lexicon) Option {
	return func(s *LexiconScorer) {
		s.lexicon = Lexicon{}.Merge(lex)
	}
}

// WithNegation toggles flipping of a word preceded by a negator
func WithNegation(enabled bool) Option {
	return func(s *LexiconScorer) {
		s.negation = enabled
	}
}

// NewLexiconScorer creates a scorer over DefaultLexicon
func NewLexiconScorer(opts ...Option) *LexiconScorer {
	s := &LexiconScorer{
		lexicon:  DefaultLexicon(),
		negation: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score never fails; the error is part of the Scorer contract
func (s *LexiconScorer) Score(ctx context.Context, text string) (types.SentimentResult, error) {
	return s.Analyze(text), nil
}

// Analyze scores text synchronously
func (s *LexiconScorer) Analyze(text string) types.SentimentResult {
	tokens := Tokenize(text)
	res := types.SentimentResult{Tokens: len(tokens)}

	for i, tok := range tokens {
		w, ok := s.lexicon.Weight(tok)
		if !ok || w == 0 {
			res.Counts.Neutral++
			continue
		}
		if s.negation && i > 0 && isNegator(tokens[i-1]) {
			w = -w
		}
		res.Score += float64(w)
		if w > 0 {
			res.Counts.Positive++
		} else {
			res.Counts.Negative++
		}
	}

	return res
}

// Tokenize lower-cases text and splits it into words. Apostrophes and
// hyphens inside a word are kept so contractions like "don't" survive.
func Tokenize(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		w := strings.Trim(current.String(), "'-")
		if w != "" {
			words = append(words, w)
		}
		current.Reset()
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			current.WriteRune(r)
		case r == '\'' || r == '’' || r == '-':
			if current.Len() > 0 {
				if r == '’' {
					r = '\''
				}
				current.WriteRune(r)
			}
		default:
			flush()
		}
	}
	flush()

	return words
}
