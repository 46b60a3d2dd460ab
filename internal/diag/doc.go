// Package diag defines the diagnostic model shared by the lexer, the driver
// and the CLI.
//
// Diagnostic is the central record: Severity, Code, Message, the source Label
// (usually a file path) and an optional source.Marker. Codes carry a stable
// string form (LEX1003, IO4001, ...) and a recovery Class:
//
//   - ClassStructural: an unterminated construct; scanning of the enclosing
//     region stops and lexing resumes after it.
//   - ClassLexical: only the current lexical unit is dropped.
//
// Producers emit through a Reporter. BagReporter collects into a Bag (limit,
// sort, dedup); DedupReporter filters repeated findings before forwarding.
// Package diag does no IO and no pretty rendering; see internal/diagfmt.
package diag
