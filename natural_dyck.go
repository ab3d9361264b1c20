package natural_dyck

import (
	"errors"
	"fmt"
)

// Symbol
// One of the four Dyck-2 brackets. Square brackets are peanut layers and
// parentheses are chocolate layers.
type Symbol rune

const (
	OpenPeanut     Symbol = '['
	OpenChocolate  Symbol = '('
	ClosePeanut    Symbol = ']'
	CloseChocolate Symbol = ')'
)

const (
	OpenPeanutSentence     = "I added a peanut layer to my cake"
	OpenChocolateSentence  = "I added a chocolate layer to my cake"
	ClosePeanutSentence    = "I ate the peanut layer"
	CloseChocolateSentence = "I ate the chocolate layer"
)

// Symbols lists the alphabet in table order.
var Symbols = []Symbol{OpenPeanut, OpenChocolate, ClosePeanut, CloseChocolate}

var ErrUnrecognizedSymbol = errors.New("unrecognized dyck-2 symbol")

// UnrecognizedSymbolError
// Returned when a rune outside of the Dyck-2 alphabet is found. Position is
// the rune index within the line.
type UnrecognizedSymbolError struct {
	Symbol   rune
	Position int
}

func (e *UnrecognizedSymbolError) Error() string {
	return fmt.Sprintf("%v: %q at position %d", ErrUnrecognizedSymbol,
		e.Symbol, e.Position)
}

func (e *UnrecognizedSymbolError) Is(target error) bool {
	return target == ErrUnrecognizedSymbol
}

// ParseSymbol
// Returns the Symbol for r, or an *UnrecognizedSymbolError with a zero
// position.
func ParseSymbol(r rune) (Symbol, error) {
	switch s := Symbol(r); s {
	case OpenPeanut, OpenChocolate, ClosePeanut, CloseChocolate:
		return s, nil
	}
	return 0, &UnrecognizedSymbolError{Symbol: r}
}

// Sentence returns the natural token for the symbol.
func (s Symbol) Sentence() string {
	switch s {
	case OpenPeanut:
		return OpenPeanutSentence
	case OpenChocolate:
		return OpenChocolateSentence
	case ClosePeanut:
		return ClosePeanutSentence
	case CloseChocolate:
		return CloseChocolateSentence
	}
	return ""
}

// Annotated returns the natural token prefixed with its symbol, e.g.
// `[: I added a peanut layer to my cake`.
func (s Symbol) Annotated() string {
	return string(rune(s)) + ": " + s.Sentence()
}

func (s Symbol) String() string {
	return string(rune(s))
}

// NaturalInstance
// The sentence form of a Dyck-2 line. Sentences and Annotated are aligned
// position for position with the symbols they were built from.
type NaturalInstance struct {
	Sentences []string
	Annotated []string
}

// ConvertDyck2
// Converts a Dyck-2 line into its natural and annotated token sequences.
// Balance is not checked.
func ConvertDyck2(dyck string) (*NaturalInstance, error) {
	runes := []rune(dyck)
	instance := &NaturalInstance{
		Sentences: make([]string, 0, len(runes)),
		Annotated: make([]string, 0, len(runes)),
	}
	for idx, r := range runes {
		symbol, err := ParseSymbol(r)
		if err != nil {
			return nil, &UnrecognizedSymbolError{Symbol: r, Position: idx}
		}
		instance.Sentences = append(instance.Sentences, symbol.Sentence())
		instance.Annotated = append(instance.Annotated, symbol.Annotated())
	}
	return instance, nil
}

// Len returns the number of tokens in the instance.
func (instance *NaturalInstance) Len() int {
	return len(instance.Sentences)
}

// Copy returns an instance that shares no backing arrays with the receiver.
func (instance *NaturalInstance) Copy() *NaturalInstance {
	sentences := make([]string, len(instance.Sentences))
	copy(sentences, instance.Sentences)
	annotated := make([]string, len(instance.Annotated))
	copy(annotated, instance.Annotated)
	return &NaturalInstance{Sentences: sentences, Annotated: annotated}
}
