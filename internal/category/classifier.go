package category

import (
	"errors"
	"math"
	"sort"
	"strings"
)

var errNotTrainable = errors.New("not enough training data")

// classifier is a multinomial naive Bayes model over unigram and bigram word
// features. It is a disposable artifact: built deterministically from the
// training corpus and thrown away on rebuild, never persisted.
type classifier struct {
	tokenCounts map[string]map[string]int
	totalTokens map[string]int
	docCounts   map[string]int
	labels      []string
	vocabSize   int
	docs        int
}

// trainClassifier builds a classifier from the corpus. The label list is
// sorted so tie-breaks during prediction are stable across rebuilds.
func trainClassifier(corpus []Example) (*classifier, error) {
	if len(corpus) == 0 {
		return nil, errNotTrainable
	}

	c := &classifier{
		tokenCounts: make(map[string]map[string]int),
		totalTokens: make(map[string]int),
		docCounts:   make(map[string]int),
	}

	vocab := make(map[string]struct{})
	for _, ex := range corpus {
		tokens := tokenize(ex.Description)
		if len(tokens) == 0 {
			continue
		}
		if c.tokenCounts[ex.Category] == nil {
			c.tokenCounts[ex.Category] = make(map[string]int)
		}
		for _, tok := range tokens {
			c.tokenCounts[ex.Category][tok]++
			c.totalTokens[ex.Category]++
			vocab[tok] = struct{}{}
		}
		c.docCounts[ex.Category]++
		c.docs++
	}

	if c.docs == 0 {
		return nil, errNotTrainable
	}

	c.vocabSize = len(vocab)
	c.labels = make([]string, 0, len(c.docCounts))
	for label := range c.docCounts {
		c.labels = append(c.labels, label)
	}
	sort.Strings(c.labels)

	return c, nil
}

// predict returns the most probable category for the description. Scores are
// log joint probabilities with Laplace smoothing; the first label in sorted
// order wins exact ties.
func (c *classifier) predict(description string) (string, error) {
	tokens := tokenize(description)
	if len(tokens) == 0 {
		return "", errors.New("no usable tokens in description")
	}

	best := ""
	bestScore := math.Inf(-1)
	for _, label := range c.labels {
		score := math.Log(float64(c.docCounts[label]) / float64(c.docs))
		denom := float64(c.totalTokens[label] + c.vocabSize)
		for _, tok := range tokens {
			score += math.Log(float64(c.tokenCounts[label][tok]+1) / denom)
		}
		if score > bestScore {
			best = label
			bestScore = score
		}
	}

	return best, nil
}

// tokenize lowercases the description and emits its words plus each adjacent
// word pair.
func tokenize(s string) []string {
	words := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(words)*2)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}
