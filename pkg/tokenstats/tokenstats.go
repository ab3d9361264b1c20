// Package tokenstats measures rendered dataset sentences in model tokens, so
// that rows too long for the downstream classifier's context are reported
// before training starts.
package tokenstats

import (
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/wbrown/gpt_bpe"
	"github.com/wbrown/natural_dyck"
)

const (
	DefaultCacheSize = 65536
	// RoBERTa wraps every passage in <s> and </s>.
	DefaultSpecialTokens = 2
)

// ResolveEncoder
// Returns the built-in encoder for `gpt2` or `pile`, otherwise loads the
// vocabulary id through gpt_bpe.
func ResolveEncoder(tokenizerId string) (*gpt_bpe.GPTEncoder, error) {
	switch strings.ToLower(tokenizerId) {
	case "", "gpt2", "roberta":
		return &gpt_bpe.GPT2Encoder, nil
	case "pile":
		return &gpt_bpe.PileEncoder, nil
	}
	return gpt_bpe.NewEncoder(tokenizerId)
}

// Counter
// Accumulates token statistics over the rows it observes. MaxTokens <= 0
// disables the over-limit check.
type Counter struct {
	encoder       *gpt_bpe.GPTEncoder
	cache         *lru.ARCCache
	MaxTokens     int
	SpecialTokens int
	Rows          int
	OverLimit     int
	Longest       int
	Total         int
	CacheHits     int
	CacheMisses   int
}

func NewCounter(encoder *gpt_bpe.GPTEncoder, maxTokens int,
	cacheSize int) (*Counter, error) {
	if encoder == nil {
		return nil, errors.New("tokenstats: nil encoder")
	}
	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Counter{
		encoder:       encoder,
		cache:         cache,
		MaxTokens:     maxTokens,
		SpecialTokens: DefaultSpecialTokens,
	}, nil
}

// Count returns the number of tokens in sentence, excluding special tokens.
func (counter *Counter) Count(sentence string) int {
	if cached, ok := counter.cache.Get(sentence); ok {
		counter.CacheHits++
		return cached.(int)
	}
	counter.CacheMisses++
	numTokens := len(*counter.encoder.Encode(&sentence))
	counter.cache.Add(sentence, numTokens)
	return numTokens
}

// Observe
// Records the model length of the row's natural sentence, special tokens
// included, and reports whether it fits within MaxTokens.
func (counter *Counter) Observe(row natural_dyck.Row) (int, bool) {
	numTokens := counter.Count(row.ModifiedSentence) + counter.SpecialTokens
	counter.Rows++
	counter.Total += numTokens
	if numTokens > counter.Longest {
		counter.Longest = numTokens
	}
	fits := counter.MaxTokens <= 0 || numTokens <= counter.MaxTokens
	if !fits {
		counter.OverLimit++
	}
	return numTokens, fits
}

// Mean is the average row length in tokens.
func (counter *Counter) Mean() float64 {
	if counter.Rows == 0 {
		return 0
	}
	return float64(counter.Total) / float64(counter.Rows)
}
