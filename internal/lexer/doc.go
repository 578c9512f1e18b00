// Package lexer implements the character-level scanner of the fieldquery condition language.
//
// The lexer is a cursor over one query string. It recognizes field names, quoted and
// unquoted values, ranges, comparisons and pattern matches, and reports failures with the
// line and column (in characters) where they were detected. The condition parser in
// internal/input drives it token by token.
//
// # Syntax
//
// A query is a list of fields, each followed by a colon and a comma separated list of values
// ending with a semicolon:
//
//	name: value, "quoted value", !excluded; id: 1~10, >20;
//
// Groups wrap fields in parentheses. A leading `*` makes a group (or the whole query) match
// when any of its fields match, `&` states the default all-must-match explicitly:
//
//	name: value; *(title: paris; teaser: paris);
//
// # Values
//
// Unquoted values may not contain spaces, quotes or any of the special characters
// `<>[](),;~!*?=&`. Inside a quoted value a quote is written twice:
//
//	name: "value ""2""";
//
// Ranges use `~` with optional brackets: `[lower` and `upper]` are inclusive (the default),
// reversed brackets `]lower` and `upper[` are exclusive. A leading `!` excludes the range:
//
//	id: 1~10, ]100~200], 310~400[, !50~70;
//
// Comparisons use `<`, `<=`, `>`, `>=` and `<>`:
//
//	age: >18, <=65, <>30;
//
// Pattern matches start with `~`, optional flags `i` (case-insensitive) and `!` (negate),
// then an operator: `*` contains, `>` starts with, `<` ends with, `=` equals:
//
//	name: ~*foo, ~i>bar, ~!<baz;
//
// # Profiles
//
// DefaultProfile additionally accepts `@field:` (order clause) and `_field:` (private
// field) names. LegacyProfile only accepts bare names but supports the `~?` regex operator.
//
// # Custom value grammars
//
// A field can register a ValueGrammar that reads its values in place of StringValue, for
// example a geographic point written as `(12,24)`.
package lexer
