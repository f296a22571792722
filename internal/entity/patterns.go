package entity

import "regexp"

// pattern pairs a compiled regex with the entity type it produces. The set
// is built once at package init and shared read-only across every scorer
// run. Patterns stay on regexp rather than a literal multi-pattern matcher
// (e.g. Aho-Corasick) because every type here is a variable-length family,
// CamelCase suffixes, \d{2,5} ports, SCREAMING_SNAKE, not a fixed-string
// dictionary; see DESIGN.md.
type pattern struct {
	typ Type
	re  *regexp.Regexp
}

var patterns = []pattern{
	// file_path: must contain a directory separator or a known extension.
	{TypeFilePath, regexp.MustCompile(`\b(?:[.~]?[\w\-]+/)+[\w\-]+(?:\.[A-Za-z0-9]+)?\b|\b[\w\-]+\.(?:go|py|js|mjs|ts|tsx|jsx|java|rb|rs|c|h|cc|cpp|hpp|json|yaml|yml|toml|md|txt|sh|sql|proto|mod|sum)\b`)},

	// error: POSIX errno-style codes and Go sentinel error identifiers.
	// Distinct from "exception" below, which covers CamelCase class-style
	// names ending in Error/Exception/Warning.
	{TypeError, regexp.MustCompile(`\bE[A-Z]{2,10}\b|\bErr[A-Z][A-Za-z0-9]*\b`)},

	// exception: CamelCase identifier ending in Error, Exception, or Warning.
	{TypeException, regexp.MustCompile(`\b[A-Z][A-Za-z0-9]*(?:Error|Exception|Warning)\b`)},

	// url: http(s) URLs, stopping at whitespace or quotes.
	{TypeURL, regexp.MustCompile(`\bhttps?://[^\s"'` + "`" + `)>]+`)},

	// port: ":1234" or the phrase "port 1234".
	{TypePort, regexp.MustCompile(`(?i):\d{2,5}\b|\bport\s+\d+\b`)},

	// command: a known CLI verb followed by a subcommand token.
	{TypeCommand, regexp.MustCompile(`\b(?:go|npm|yarn|pnpm|pip|pip3|git|docker|kubectl|make|cargo|python3?|node|curl|brew|apt|systemctl)\s+[a-zA-Z][\w.\-]*`)},

	// package: dotted-host import paths (e.g. github.com/foo/bar) or
	// npm-style scoped packages (e.g. @scope/name).
	{TypePackage, regexp.MustCompile(`\b[a-z0-9][a-z0-9\-]*(?:\.[a-z0-9][a-z0-9\-]*)+/[\w\-./]+\b|@[a-z0-9\-]+/[a-z0-9][\w\-]*`)},

	// http_status: a 3-digit status code immediately followed by its
	// canonical reason phrase, so bare numbers don't inflate coverage.
	{TypeHTTPStatus, regexp.MustCompile(`\b[1-5]\d{2}\s+(?:OK|Created|Accepted|No Content|Moved Permanently|Found|Not Modified|Bad Request|Unauthorized|Forbidden|Not Found|Conflict|Unprocessable Entity|Too Many Requests|Internal Server Error|Bad Gateway|Service Unavailable|Gateway Timeout)\b`)},

	// function: an identifier immediately followed by a call or
	// definition-style parenthesis.
	{TypeFunction, regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\(\)`)},

	// class_name: a two-or-more-hump CamelCase identifier. Matches that
	// also satisfy the exception pattern are filtered out in extractor.go
	// so a single surface isn't double-counted under two types.
	{TypeClassName, regexp.MustCompile(`\b(?:[A-Z][a-z0-9]+){2,}\b`)},

	// env_var: SCREAMING_SNAKE_CASE with at least two tokens.
	{TypeEnvVar, regexp.MustCompile(`\b[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)+\b`)},
}

// exceptionSuffixRe reports whether s looks like an exception/class name
// (CamelCase ending in Error, Exception, or Warning) — used to keep
// class_name from re-claiming a surface the exception pattern already owns.
var exceptionSuffixRe = regexp.MustCompile(`(?:Error|Exception|Warning)$`)
