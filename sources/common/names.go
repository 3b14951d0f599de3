package common

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	TBPRE = "tb"
	CLPRE = "cl"
)

var (
	space = regexp.MustCompile(`\s+`)
	reg   = regexp.MustCompile(`[^a-zA-Z0-9 _]+`)
)

/*
GenCompliantNames turns raw header or sheet names into names sqlite accepts
without quoting: lower case, snake case, disallowed characters stripped.
Keywords get a trailing underscore. A name that starts with a digit is
prefixed with {prefix}{idx}, and a name that is empty after cleaning becomes
{prefix}{idx}. Collisions get the smallest numeric suffix, from 2, that is
not already taken.
*/
func GenCompliantNames(rawnames []string, prefix string) []string {
	gorgeous := make([]string, len(rawnames))

	seen := make(map[string]bool, len(rawnames))
	for idx, item := range rawnames {
		item = strings.TrimSpace(item)
		item = reg.ReplaceAllString(item, "")
		item = space.ReplaceAllString(item, "_")
		item = strings.ToLower(item)

		if len(item) == 0 {
			item = fmt.Sprintf("%s%d", prefix, idx)
		} else if item[0] >= '0' && item[0] <= '9' {
			item = fmt.Sprintf("%s%d%s", prefix, idx, item)
		} else if isKeyword(item) {
			item += "_"
		}

		name := item
		for n := 2; seen[name]; n++ {
			name = fmt.Sprintf("%s%d", item, n)
		}
		seen[name] = true
		gorgeous[idx] = name
	}
	return gorgeous
}

// GenColumnNames generates sanitized SQL column names from raw headers.
// If columns are complete junk it will return cl0, cl1, cl2, etc.
func GenColumnNames(rawheaders []string) []string {
	return GenCompliantNames(rawheaders, CLPRE)
}

// GenTableNames generates sanitized SQL table names from raw table names.
func GenTableNames(rawtables []string) []string {
	return GenCompliantNames(rawtables, TBPRE)
}

// PositionalNames returns cl0..cl{n-1}, used when a source has no header.
func PositionalNames(n int) []string {
	return GenColumnNames(make([]string, n))
}

func isKeyword(name string) bool {
	for _, keyword := range KEYWORDS_LOWER {
		if name == keyword {
			return true
		}
	}
	return false
}

// KEYWORDS_LOWER lists the sqlite keywords that need quoting when used as identifiers.
// https://sqlite.org/lang_keywords.html
var KEYWORDS_LOWER = []string{
	"abort", "action", "add", "after", "all", "alter", "always", "analyze", "and", "as",
	"asc", "attach", "autoincrement", "before", "begin", "between", "by", "cascade", "case", "cast",
	"check", "collate", "column", "commit", "conflict", "constraint", "create", "cross", "current", "current_date",
	"current_time", "current_timestamp", "database", "default", "deferrable", "deferred", "delete", "desc", "detach", "distinct",
	"do", "drop", "each", "else", "end", "escape", "except", "exclude", "exclusive", "exists",
	"explain", "fail", "filter", "first", "following", "for", "foreign", "from", "full", "generated",
	"glob", "group", "groups", "having", "if", "ignore", "immediate", "in", "index", "indexed",
	"initially", "inner", "insert", "instead", "intersect", "into", "is", "isnull", "join", "key",
	"last", "left", "like", "limit", "match", "materialized", "natural", "no", "not", "nothing",
	"notnull", "null", "nulls", "of", "offset", "on", "or", "order", "others", "outer",
	"over", "partition", "plan", "pragma", "preceding", "primary", "query", "raise", "range", "recursive",
	"references", "regexp", "reindex", "release", "rename", "replace", "restrict", "returning", "right", "rollback",
	"row", "rows", "savepoint", "select", "set", "table", "temp", "temporary", "then", "ties",
	"to", "transaction", "trigger", "unbounded", "union", "unique", "update", "using", "vacuum", "values",
	"view", "virtual", "when", "where", "window", "with", "without",
}
