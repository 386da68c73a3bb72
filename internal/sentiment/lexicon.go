package sentiment

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps a lower-case word to a signed integer weight (-5..5)
type Lexicon map[string]int

// Weight returns the word's weight and whether it is known
func (l Lexicon) Weight(word string) (int, bool) {
	w, ok := l[word]
	return w, ok
}

// Merge returns a copy of l with every entry of o applied on top
func (l Lexicon) Merge(o Lexicon) Lexicon {
	out := make(Lexicon, len(l)+len(o))
	for k, v := range l {
		out[k] = v
	}
	for k, v := range o {
		out[strings.ToLower(k)] = v
	}
	return out
}

// LoadLexicon reads a YAML mapping of word -> weight
func LoadLexicon(path string) (Lexicon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]int
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	lex := make(Lexicon, len(raw))
	for k, v := range raw {
		if v < -5 || v > 5 {
			return nil, fmt.Errorf("lexicon %s: weight for %q out of range [-5,5]: %d", path, k, v)
		}
		lex[strings.ToLower(k)] = v
	}
	return lex, nil
}

// DefaultLexicon returns the built-in weighted word list, a general-purpose
// valence list extended with market vocabulary.
func DefaultLexicon() Lexicon {
	lex := make(Lexicon, 256)
	add := func(weight int, words ...string) {
		for _, w := range words {
			lex[w] = weight
		}
	}

	add(4, "amazing", "awesome", "breakthrough", "brilliant", "exceptional",
		"fantastic", "outstanding", "superb", "thrilled", "wonderful")
	add(3, "beat", "beats", "bullish", "excellent", "excited", "great", "love",
		"moon", "outperform", "outperforms", "rally", "record", "skyrocket",
		"soar", "soared", "soaring", "surge", "surged", "tremendous", "winning")
	add(2, "benefit", "boost", "confident", "gain", "gains", "good", "grew",
		"growth", "happy", "improve", "improved", "innovation", "innovative",
		"opportunity", "optimistic", "profit", "profitable", "profits", "robust",
		"solid", "strong", "success", "successful", "upgrade", "upgraded", "win")
	add(1, "buy", "favorable", "fine", "higher", "hope", "interesting", "like",
		"positive", "progress", "rise", "rising", "stable", "steady", "up", "upbeat")

	add(-1, "concern", "concerns", "down", "lower", "overvalued", "slow",
		"uncertain", "uncertainty", "volatile", "volatility", "worry")
	add(-2, "bad", "bearish", "cut", "cuts", "decline", "declined", "delay",
		"delayed", "disappoint", "disappointed", "disappointing", "downgrade",
		"downgraded", "drop", "dropped", "fall", "falling", "headwind", "lawsuit",
		"loss", "losses", "miss", "missed", "negative", "poor", "problem",
		"recall", "risk", "risky", "sell", "weak", "weakness", "worse")
	add(-3, "awful", "bankrupt", "crash", "crashed", "crisis", "dump", "failure",
		"fraud", "layoffs", "plunge", "plunged", "recession", "scandal",
		"slump", "tank", "tanked", "terrible", "worst")
	add(-4, "catastrophe", "catastrophic", "disaster", "disastrous", "horrible")

	return lex
}

// negators flip the weight of the word that follows them
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "nor": true, "neither": true,
	"don't": true, "dont": true, "doesn't": true, "doesnt": true,
	"didn't": true, "didnt": true, "isn't": true, "isnt": true,
	"aren't": true, "arent": true, "wasn't": true, "wasnt": true,
	"won't": true, "wont": true, "can't": true, "cant": true, "cannot": true,
	"shouldn't": true, "wouldn't": true, "hardly": true, "without": true,
}

func isNegator(word string) bool {
	return negators[word]
}
