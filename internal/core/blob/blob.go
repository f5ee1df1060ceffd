// Package blob decodes text cells that hold either a bare scalar or an encoded list.
//
// Warehouse export jobs write list-valued columns inconsistently: some rows carry
// JSON arrays, some carry single-quoted literal lists, some carry a plain value.
// Decoding never fails; anything that cannot be read as a list becomes one opaque token.
package blob

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind tags the shape a raw cell was decoded from.
type Kind int

const (
	KindEmpty       Kind = iota // null or blank input
	KindScalar                  // bare value, not bracket-wrapped
	KindList                    // bracket-wrapped and parsed as a list
	KindUnparseable             // bracket-wrapped but unreadable; kept whole
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindUnparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// Blob is a decoded cell. Tokens is already normalized: trimmed, no empty
// entries, original order preserved.
type Blob struct {
	Kind   Kind
	Tokens []string
}

var errNotList = errors.New("not a list")

// Parse decodes raw according to its shape.
func Parse(raw string) Blob {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Blob{Kind: KindEmpty}
	}
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return Blob{Kind: KindScalar, Tokens: []string{trimmed}}
	}

	items, err := parseJSONList(trimmed)
	if err != nil {
		items, err = parseLiteralList(trimmed)
	}
	if err != nil {
		return Blob{Kind: KindUnparseable, Tokens: []string{trimmed}}
	}

	tokens := make([]string, 0, len(items))
	for _, item := range items {
		if tok := strings.TrimSpace(itemText(item)); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return Blob{Kind: KindList, Tokens: tokens}
}

// Scalar is the pass-through used when a column is known to be single-valued.
func Scalar(raw string) Blob {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Blob{Kind: KindEmpty}
	}
	return Blob{Kind: KindScalar, Tokens: []string{trimmed}}
}

// Decode returns the ordered tokens of raw.
func Decode(raw string) []string {
	return Parse(raw).Tokens
}

func parseJSONList(s string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after list")
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errNotList
	}
	return list, nil
}

// parseLiteralList reads single- or double-quoted flow lists such as ['a', 'b'].
// A YAML flow sequence accepts both quote styles as well as bare words.
func parseLiteralList(s string) ([]any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(rewriteSingleQuoteEscapes(s)), &v); err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errNotList
	}
	return list, nil
}

// rewriteSingleQuoteEscapes turns backslash escapes inside single-quoted
// items ('it\'s', 'a\\b') into YAML single-quoted form ('it''s', 'a\b').
// Double-quoted items are copied as is since YAML already reads \" there.
func rewriteSingleQuoteEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 4)
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote == 0:
			if c == '\'' || c == '"' {
				quote = c
			}
		case c == '\\' && i+1 < len(s):
			next := s[i+1]
			i++
			switch {
			case quote == '"':
				b.WriteByte(c)
				b.WriteByte(next)
			case next == '\'':
				b.WriteString("''")
			case next == '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			continue
		case c == quote:
			quote = 0
		}
		b.WriteByte(c)
	}
	return b.String()
}

func itemText(item any) string {
	switch v := item.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
