package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"twig/internal/diag"
	"twig/internal/observ"
	"twig/internal/token"
	"twig/internal/trace"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestTokenizeSource(t *testing.T) {
	res := TokenizeSource("inline.twig", "{{ 1.2.3 }}", Options{MaxDiagnostics: 10})
	if res.Bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", res.Bag.Len())
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.LexBadNumber || d.Label != "inline.twig" || d.Marker.Column != 7 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if res.File == nil || res.FileSet == nil {
		t.Fatal("file set must be populated")
	}
}

func TestTokenizeSourceExpr(t *testing.T) {
	res := TokenizeSource("expr", "a + b", Options{MaxDiagnostics: 10, Expr: true})
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if len(res.Tokens) != 3 || !res.Tokens[1].IsOperator(token.Addition) {
		t.Fatalf("unexpected tokens %v", res.Tokens)
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(filepath.Join(t.TempDir(), "nope.twig"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestTokenizeNormalizesNFC(t *testing.T) {
	dir := writeFiles(t, map[string]string{"n.twig": "e\u0301"})
	path := filepath.Join(dir, "n.twig")

	plain, err := Tokenize(path, Options{MaxDiagnostics: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := plain.Tokens[0].Text(); got != "e\u0301" {
		t.Errorf("without NFC got %q", got)
	}

	nfc, err := Tokenize(path, Options{MaxDiagnostics: 1, NormalizeNFC: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(nfc.Tokens) != 1 || nfc.Tokens[0].Text() != "\u00e9" {
		t.Errorf("with NFC got %v", nfc.Tokens)
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) OnEvent(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) final() map[string]Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]Status)
	for _, ev := range l.events {
		out[filepath.Base(ev.File)] = ev.Status
	}
	return out
}

func TestTokenizeDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.twig":       "{{ 'ok' }}",
		"a.twig":       "{% if x %}",
		"sub/c.TWIG":   "{# note #}",
		"notes.txt":    "{{ ignored",
		"sub/bad.twig": "{{ @ }}",
	})

	log := &eventLog{}
	counter := &Counter{}
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	opts := Options{MaxDiagnostics: 10, Jobs: 2, Progress: MultiSink(log, nil, counter), Tracer: ring}
	fs, results, err := TokenizeDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if fs == nil {
		t.Fatal("nil file set")
	}

	var got []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"a.twig", "b.twig", "sub/bad.twig", "sub/c.TWIG"}
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("files = %v, want %v", got, want)
		}
	}

	if results[0].Bag.HasErrors() || results[1].Bag.HasErrors() || results[3].Bag.HasErrors() {
		t.Error("only sub/bad.twig must report errors")
	}
	if !results[2].Bag.HasErrors() || results[2].Bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("sub/bad.twig diagnostics: %v", results[2].Bag.Items())
	}

	statuses := log.final()
	if statuses["bad.twig"] != StatusError || statuses["a.twig"] != StatusDone {
		t.Errorf("final statuses %v", statuses)
	}
	if s := counter.String(); s != "4/4 files, 1 failed" {
		t.Errorf("counter = %q", s)
	}

	var fileSpans int
	var dirSpan uint64
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindBegin && ev.Name == "tokenize_dir" {
			dirSpan = ev.Span
		}
		if ev.Scope == trace.ScopeFile && ev.Kind == trace.KindEnd {
			fileSpans++
			if ev.Parent == 0 || ev.Parent != dirSpan || ev.File == "" {
				t.Errorf("file span %+v not nested under tokenize_dir %d", ev, dirSpan)
			}
		}
	}
	if fileSpans != len(want) {
		t.Errorf("expected %d file spans, got %d", len(want), fileSpans)
	}

	merged := MergeBags(results, 0)
	if merged.Len() != 1 {
		t.Errorf("merged bag has %d items", merged.Len())
	}
	if CountTokens(results) == 0 {
		t.Error("no tokens counted")
	}
}

func TestTokenizeDirExtensions(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.html": "x", "b.twig": "y"})
	_, results, err := TokenizeDir(context.Background(), dir, Options{MaxDiagnostics: 1, Extensions: []string{"html"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "a.html" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	fs, results, err := TokenizeDir(context.Background(), t.TempDir(), Options{})
	if err != nil || results != nil || fs == nil {
		t.Fatalf("fs=%v results=%v err=%v", fs, results, err)
	}
}

func TestTokenizeDirCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.twig": "x", "b.twig": "y"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := TokenizeDir(ctx, dir, Options{MaxDiagnostics: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTokenizeDirMissing(t *testing.T) {
	_, _, err := TokenizeDir(context.Background(), filepath.Join(t.TempDir(), "absent"), Options{})
	if err == nil {
		t.Fatal("expected walk error")
	}
}

func TestTokenCache(t *testing.T) {
	cache, err := OpenTokenCache(t.TempDir(), "twig")
	if err != nil {
		t.Fatal(err)
	}
	dir := writeFiles(t, map[string]string{"p.twig": "a {{ x + \"h#{y}\" }} {{ 1.2.3 }}"})
	path := filepath.Join(dir, "p.twig")
	opts := Options{MaxDiagnostics: 10, Cache: cache}

	first, err := Tokenize(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Tokenize(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags: first=%v second=%v", first.Cached, second.Cached)
	}
	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token count %d vs %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		if a.String() != b.String() || a.Start != b.Start || len(a.Children) != len(b.Children) {
			t.Errorf("token %d: %v vs %v", i, a, b)
		}
	}
	if token.Reconstruct(first.Tokens) != token.Reconstruct(second.Tokens) {
		t.Error("trivia lost in cache")
	}
	if second.Bag.Len() != 1 || second.Bag.Items()[0] != first.Bag.Items()[0] {
		t.Errorf("diagnostics not replayed: %v", second.Bag.Items())
	}

	// у другого режима свой ключ
	expr, err := Tokenize(path, Options{MaxDiagnostics: 10, Cache: cache, Expr: true})
	if err != nil {
		t.Fatal(err)
	}
	if expr.Cached {
		t.Error("expression mode must not reuse template-mode entry")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	again, err := Tokenize(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if again.Cached {
		t.Error("DropAll must invalidate entries")
	}
}

func TestAppendTimings(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexBadNumber, "a.twig", nil, "x"))

	tm := observ.NewTimer()
	tm.End(tm.Begin(observ.PhaseLex), "")
	AppendTimings(bag, "a.twig", tm.Report())

	if bag.Len() != 2 || bag.Dropped() != 0 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}
	d := bag.Items()[1]
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo {
		t.Errorf("unexpected timing diagnostic %+v", d)
	}
}

func TestMultiSinkCollapses(t *testing.T) {
	if MultiSink(nil, nil) != nil {
		t.Error("all-nil sinks must collapse to nil")
	}
	c := &Counter{}
	if MultiSink(nil, c) != ProgressSink(c) {
		t.Error("single sink must be returned as is")
	}
	if c.String() != "" {
		t.Errorf("empty counter = %q", c.String())
	}
}
