// Package tokenizer counts tokens the way the embedding model does,
// so chunk budgets line up with what the provider bills.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts tokens using a tiktoken BPE encoding.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New creates a tokenizer for the given model name (e.g. "gpt-4").
func New(model string) (*Tokenizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("load encoding for %s: %w", model, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
