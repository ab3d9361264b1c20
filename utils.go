package natural_dyck

import (
	"errors"
	"strings"
)

var ErrEmptyInput = errors.New("cannot render an empty token sequence")

const (
	tokenSeparator = " , "
	lastSeparator  = " and "
	terminator     = " ."
)

// ToStr
// Renders tokens as one sentence: all but the last joined with ` , `, then
// ` and <last> .`.
//
// A single token renders as ` and <token> .` with a leading space; existing
// datasets were produced that way, so it is kept.
func ToStr(tokens []string) (string, error) {
	if len(tokens) == 0 {
		return "", ErrEmptyInput
	}
	last := len(tokens) - 1
	var sb strings.Builder
	sb.WriteString(strings.Join(tokens[:last], tokenSeparator))
	sb.WriteString(lastSeparator)
	sb.WriteString(tokens[last])
	sb.WriteString(terminator)
	return sb.String(), nil
}
