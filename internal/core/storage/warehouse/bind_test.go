package warehouse

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	params := map[string]any{"gcid": "user-1", "y": "2024", "m": "2024-02"}
	query := "SELECT a::text FROM t WHERE g = :gcid AND (y > :y OR (y = :y AND m >= :m)) AND note <> 'x:y'"

	tests := []struct {
		name      string
		style     BindStyle
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "dollar reuses indexes",
			style:     BindDollar,
			wantQuery: "SELECT a::text FROM t WHERE g = $1 AND (y > $2 OR (y = $2 AND m >= $3)) AND note <> 'x:y'",
			wantArgs:  []any{"user-1", "2024", "2024-02"},
		},
		{
			name:      "question repeats values",
			style:     BindQuestion,
			wantQuery: "SELECT a::text FROM t WHERE g = ? AND (y > ? OR (y = ? AND m >= ?)) AND note <> 'x:y'",
			wantArgs:  []any{"user-1", "2024", "2024", "2024-02"},
		},
		{
			name:      "named keeps markers",
			style:     BindNamed,
			wantQuery: query,
			wantArgs:  []any{sql.Named("gcid", "user-1"), sql.Named("y", "2024"), sql.Named("m", "2024-02")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotQuery, gotArgs, err := compile(query, params, tc.style)
			require.NoError(t, err)
			require.Equal(t, tc.wantQuery, gotQuery)
			require.Equal(t, tc.wantArgs, gotArgs)
		})
	}
}

func TestCompile_MissingParameter(t *testing.T) {
	_, _, err := compile("SELECT 1 WHERE a = :missing", map[string]any{}, BindDollar)
	require.ErrorContains(t, err, `missing bind parameter "missing"`)
}

func TestCompile_NoParameters(t *testing.T) {
	q, args, err := compile("SELECT 1", nil, BindDollar)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1", q)
	require.Empty(t, args)
}

func TestCompile_LoneColon(t *testing.T) {
	q, args, err := compile("SELECT ': ' || x, y : 1", map[string]any{}, BindQuestion)
	require.NoError(t, err)
	require.Equal(t, "SELECT ': ' || x, y : 1", q)
	require.Empty(t, args)
}
