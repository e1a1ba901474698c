package tokenizer

import "strings"

// keywordTypes maps words with a dedicated TokenType.
var keywordTypes = map[string]TokenType{
	"SELECT": SELECT, "INSERT": INSERT, "UPDATE": UPDATE, "DELETE": DELETE,
	"CREATE": CREATE, "ALTER": ALTER, "DROP": DROP, "WITH": WITH,

	"FROM": FROM, "WHERE": WHERE, "GROUP": GROUP, "ORDER": ORDER, "BY": BY,
	"HAVING": HAVING, "LIMIT": LIMIT, "OFFSET": OFFSET,
	"UNION": UNION, "EXCEPT": EXCEPT, "INTERSECT": INTERSECT, "ALL": ALL, "DISTINCT": DISTINCT,
	"AS": AS, "INTO": INTO, "VALUES": VALUES, "SET": SET, "RETURNING": RETURNING,
	"JOIN": JOIN, "ON": ON, "USING": USING,

	"AND": AND, "OR": OR, "NOT": NOT, "IN": IN, "EXISTS": EXISTS, "BETWEEN": BETWEEN,
	"LIKE": LIKE, "IS": IS, "NULL": NULL,
	"CASE": CASE, "WHEN": WHEN, "THEN": THEN, "ELSE": ELSE, "END": END,

	"TRUE": BOOLEAN, "FALSE": BOOLEAN,
}

// reservedWords is the strict-reserved union of PostgreSQL, MySQL and SQLite
// that has no dedicated TokenType. Words that are only reserved in some
// dialects (types, function names) stay identifiers.
var reservedWords = map[string]struct{}{
	// Row locking and concurrency control
	"SHARE": {}, "NO": {}, "NOWAIT": {}, "SKIP": {}, "LOCKED": {}, "FOR": {},
	// Common SQL reserved words
	"ASC": {}, "CHECK": {}, "CONSTRAINT": {}, "CROSS": {},
	"CURRENT_DATE": {}, "CURRENT_TIME": {}, "CURRENT_TIMESTAMP": {}, "DATABASE": {},
	"DEFAULT": {}, "DESC": {}, "FOREIGN": {}, "FULL": {}, "IF": {}, "INDEX": {},
	"INNER": {}, "KEY": {}, "LEFT": {}, "MATCH": {}, "NATURAL": {},
	"OUTER": {}, "PRIMARY": {}, "REFERENCES": {}, "RIGHT": {}, "TABLE": {},
	"TO": {}, "UNIQUE": {}, "VIEW": {}, "CONFLICT": {}, "DO": {}, "NOTHING": {},
	// PostgreSQL
	"SIMILAR": {}, "ILIKE": {}, "OVER": {}, "PARTITION": {}, "RANGE": {}, "ROWS": {},
	"UNBOUNDED": {}, "PRECEDING": {}, "FOLLOWING": {}, "CURRENT": {}, "ROW": {},
	"WINDOW": {}, "LATERAL": {}, "ONLY": {}, "RECURSIVE": {},
	// MySQL / SQLite
	"REGEXP": {}, "XOR": {}, "SHOW": {}, "TRIGGER": {}, "UNLOCK": {},
	"MOD": {}, "DIV": {}, "LOCK": {}, "STRAIGHT_JOIN": {}, "IGNORE": {},
	"PRAGMA": {}, "TEMPORARY": {}, "TEMP": {},
}

// LookupKeyword returns the TokenType for a word: a dedicated keyword type,
// RESERVED_IDENTIFIER, or IDENTIFIER.
func LookupKeyword(word string) TokenType {
	upper := strings.ToUpper(word)
	if tt, ok := keywordTypes[upper]; ok {
		return tt
	}

	if _, ok := reservedWords[upper]; ok {
		return RESERVED_IDENTIFIER
	}

	return IDENTIFIER
}
