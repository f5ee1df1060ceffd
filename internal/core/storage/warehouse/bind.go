package warehouse

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// BindStyle is how a driver expects bind parameters in query text.
type BindStyle int

const (
	// BindNamed keeps ":name" markers and passes sql.NamedArg values.
	BindNamed BindStyle = iota
	// BindDollar rewrites markers to $1, $2, ... reusing the index of a repeated name.
	BindDollar
	// BindQuestion rewrites every marker to ? and repeats the value per occurrence.
	BindQuestion
)

// compile rewrites ":name" markers in query for style and returns the driver
// arguments. Markers inside single-quoted literals and "::" casts are left alone.
// Every referenced name must be present in params.
func compile(query string, params map[string]any, style BindStyle) (string, []any, error) {
	var (
		b       strings.Builder
		args    []any
		indexes = make(map[string]int)
		inQuote bool
	)
	b.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]

		if c == '\'' {
			inQuote = !inQuote
			b.WriteByte(c)
			continue
		}
		if inQuote || c != ':' {
			b.WriteByte(c)
			continue
		}

		if i+1 < len(query) && query[i+1] == ':' {
			b.WriteString("::")
			i++
			continue
		}

		end := i + 1
		for end < len(query) && isIdentByte(query[end], end == i+1) {
			end++
		}
		if end == i+1 {
			b.WriteByte(c)
			continue
		}

		name := query[i+1 : end]
		value, ok := params[name]
		if !ok {
			return "", nil, fmt.Errorf("missing bind parameter %q", name)
		}

		switch style {
		case BindNamed:
			if _, seen := indexes[name]; !seen {
				indexes[name] = len(args)
				args = append(args, sql.Named(name, value))
			}
			b.WriteString(query[i:end])
		case BindDollar:
			idx, seen := indexes[name]
			if !seen {
				args = append(args, value)
				idx = len(args)
				indexes[name] = idx
			}
			b.WriteString("$" + strconv.Itoa(idx))
		case BindQuestion:
			args = append(args, value)
			b.WriteByte('?')
		}
		i = end - 1
	}

	return b.String(), args, nil
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}
