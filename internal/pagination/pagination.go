// Package pagination implements keyset pagination over a deterministic
// total order. Listings always order by a unique composite key; a single
// non-unique sort column would make page boundaries unstable under ties.
package pagination

import (
	"strings"
	"time"

	"github.com/craftportal/learning-service/internal/apperrors"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// ClampLimit normalizes a requested page size: zero falls back to def,
// everything is clamped to [1, MaxLimit].
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Order is one column of the composite sort key. The last Order must be a
// unique column (in practice the primary key) to break ties.
type Order struct {
	Column string
	Desc   bool
}

// OrderBy renders the ORDER BY clause for the composite key.
func OrderBy(orders []Order) string {
	parts := make([]string, len(orders))
	for i, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts[i] = o.Column + " " + dir
	}
	return strings.Join(parts, ", ")
}

// WhereAfter builds the keyset predicate selecting rows strictly after the
// cursor position in sort order, expanded lexicographically:
//
//	(c1 > k1) OR (c1 = k1 AND c2 > k2) OR ...
//
// with the comparison flipped for descending columns.
func WhereAfter(orders []Order, keys []any) (string, []any, error) {
	// An arity mismatch means the token came from a different listing;
	// treat it like any other bad cursor.
	if len(orders) == 0 || len(orders) != len(keys) {
		return "", nil, apperrors.ValidationMsg("cursor", "invalid cursor token")
	}

	var clauses []string
	var args []any
	for i := range orders {
		var conds []string
		for j := 0; j < i; j++ {
			conds = append(conds, orders[j].Column+" = ?")
			args = append(args, keys[j])
		}
		op := ">"
		if orders[i].Desc {
			op = "<"
		}
		conds = append(conds, orders[i].Column+" "+op+" ?")
		args = append(args, keys[i])
		clauses = append(clauses, "("+strings.Join(conds, " AND ")+")")
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args, nil
}

// TimeKey serializes a timestamp for a cursor tuple.
func TimeKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeKey converts a decoded cursor key back into a time.Time so the
// keyset predicate compares it as a timestamp, not as text.
func ParseTimeKey(key any) (time.Time, error) {
	s, ok := key.(string)
	if !ok {
		return time.Time{}, apperrors.ValidationMsg("cursor", "invalid cursor token")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, apperrors.ValidationMsg("cursor", "invalid cursor token")
	}
	return t, nil
}

// BuildPage turns a limit+1 lookahead fetch into the page envelope: if the
// extra row came back there is a next page and the cursor is built from the
// last *returned* row's key tuple.
func BuildPage[T any](rows []T, limit int, codec *Codec, keyOf func(T) []any) ([]T, *string, error) {
	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	token, err := codec.Encode(keyOf(rows[len(rows)-1])...)
	if err != nil {
		return nil, nil, err
	}
	return rows, &token, nil
}
