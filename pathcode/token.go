package pathcode

import (
	"fmt"
	"strings"
)

// Token is a sibling-position marker: Index is the 0-based position among
// the parent's children and Text is "1" followed by Index zeros.
type Token struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// NewToken returns the token for sibling position index (index ≥ 0).
func NewToken(index int) Token {
	return Token{Index: index, Text: "1" + strings.Repeat("0", index)}
}

// DecodeToken parses text back into a Token. The index is the number of
// trailing zeros after the leading "1".
func DecodeToken(text string) (Token, error) {
	if len(text) == 0 || text[0] != '1' {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidToken, text)
	}
	zeros := strings.TrimLeft(text[1:], "0")
	if zeros != "" {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidToken, text)
	}
	return Token{Index: len(text) - 1, Text: text}, nil
}

// Split decodes path into its tokens, leaf first and root last.
func Split(path string) ([]Token, error) {
	if path == "" || path[0] != '1' {
		return nil, fmt.Errorf("%w: path %q must start with 1", ErrInvalidToken, path)
	}
	var tokens []Token
	start := 0
	for i := 1; i <= len(path); i++ {
		if i < len(path) && path[i] == '0' {
			continue
		}
		if i < len(path) && path[i] != '1' {
			return nil, fmt.Errorf("%w: path %q has byte %q", ErrInvalidToken, path, path[i])
		}
		tokens = append(tokens, Token{Index: i - start - 1, Text: path[start:i]})
		start = i
	}
	return tokens, nil
}

// ParentPath strips the leading token of path. A root path yields "".
func ParentPath(path string) (string, error) {
	tokens, err := Split(path)
	if err != nil {
		return "", err
	}
	return path[len(tokens[0].Text):], nil
}
