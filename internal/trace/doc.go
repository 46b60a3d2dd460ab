// Package trace records what a tokenize/check run did: driver spans for
// commands and directory walks, one span per lexed file, and a mode event
// for every template-mode switch the lexer makes, with the file label and
// source position right after the delimiter that caused it.
//
//	twig check --trace=- --trace-level=debug page.twig
//
// Tracers: Nop (disabled), StreamTracer (text or NDJSON as events arrive),
// RingTracer (last N events, dumped at exit) and MultiTracer (both).
//
// Levels gate scopes: LevelPhase keeps ScopeDriver, LevelDetail adds
// ScopeFile, LevelDebug adds ScopeMode.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "check")
//	file := span.Child(trace.ScopeFile, "lex").ForFile("page.twig")
//	file.End("12 tokens")
//	span.End("")
package trace
