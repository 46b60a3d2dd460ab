package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vmihailenco/msgpack/v5"

	"twig/internal/diagfmt"
)

// resetFlags возвращает глобальные команды в исходное состояние между прогонами.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	stopProfiling(rootCmd)
	runTraceCleanup()
	return stdout.String(), stderr.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
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
	t.Chdir(dir)
	return dir
}

func TestTokenizeExprJSON(t *testing.T) {
	writeTree(t, nil)
	stdout, _, err := execute(t, "tokenize", "--expr", "--format", "json", "a + 1")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var toks []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(stdout), &toks); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout)
	}
	if len(toks) != 3 || toks[1].Payload != "Addition" || toks[2].Payload != "Number" {
		t.Fatalf("unexpected tokens %+v", toks)
	}
}

func TestTokenizeFilePretty(t *testing.T) {
	writeTree(t, map[string]string{"page.twig": "Hi {{ name }}"})
	stdout, stderr, err := execute(t, "tokenize", "page.twig")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !strings.Contains(stdout, "Separator(ExpressionStart)") || !strings.Contains(stdout, `"name" at 1:7`) {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
	if stderr != "" {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
}

func TestTokenizeDirMsgpackWithDiagnostics(t *testing.T) {
	writeTree(t, map[string]string{
		"a.twig":     "{{ 1.2.3 }}",
		"sub/b.twig": "plain",
		"c.txt":      "skip",
	})
	stdout, stderr, err := execute(t, "tokenize", "--format", "msgpack", "--ui", "off", "--timings", ".")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var files []diagfmt.FileTokensOutput
	if err := msgpack.Unmarshal([]byte(stdout), &files); err != nil {
		t.Fatalf("invalid msgpack: %v", err)
	}
	if len(files) != 2 || files[0].File != "a.twig" || files[1].File != "sub/b.twig" {
		t.Fatalf("unexpected files %+v", files)
	}
	if !strings.Contains(stderr, "a.twig:1:7: ERROR LEX1101") {
		t.Errorf("diagnostic missing from stderr:\n%s", stderr)
	}
	if !strings.Contains(stderr, "timings:") || !strings.Contains(stderr, "render") {
		t.Errorf("timings missing from stderr:\n%s", stderr)
	}
}

func TestTokenizeRejectsUnknownFormat(t *testing.T) {
	writeTree(t, nil)
	if _, _, err := execute(t, "tokenize", "--expr", "--format", "xml", "a"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCheck(t *testing.T) {
	writeTree(t, map[string]string{
		"ok.twig":  "{% if a %}{{ a }}{% endif %}",
		"bad.twig": "{{ 'x' }}\n{{ @ }}",
	})

	stdout, stderr, err := execute(t, "check", "--format", "short")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	if want := "error LEX1103 bad.twig:2:4 Unexpected character '@'\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "1 error(s), 0 warning(s) in 2 file(s)") {
		t.Errorf("unexpected summary:\n%s", stderr)
	}

	stdout, _, err = execute(t, "check", "--format", "json", "--path-mode", "basename", "bad.twig")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout)
	}
	if out.Count != 1 || out.Diagnostics[0].Location.File != "bad.twig" || out.Diagnostics[0].Location.Line != 2 {
		t.Errorf("unexpected output %+v", out)
	}

	_, stderr, err = execute(t, "check", "--quiet", "ok.twig")
	if err != nil || stderr != "" {
		t.Errorf("clean check: err=%v stderr=%q", err, stderr)
	}
}

func TestConfigDrivesDefaults(t *testing.T) {
	writeTree(t, map[string]string{
		"twig.toml": "[output]\nformat = \"json\"\n[lex]\nextensions = [\".html\"]\n",
		"a.html":    "{{ x }}",
		"b.twig":    "{{ y }}",
	})
	stdout, _, err := execute(t, "tokenize", "--ui", "off", ".")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var files []diagfmt.FileTokensOutput
	if err := json.Unmarshal([]byte(stdout), &files); err != nil {
		t.Fatalf("expected json output from config: %v\n%s", err, stdout)
	}
	if len(files) != 1 || files[0].File != "a.html" {
		t.Errorf("unexpected files %+v", files)
	}

	// флаг перекрывает конфиг
	stdout, _, err = execute(t, "tokenize", "--ui", "off", "--ext", ".twig", "--format", "pretty", ".")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !strings.HasPrefix(stdout, "== b.twig ==\n") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestBrokenConfigFails(t *testing.T) {
	writeTree(t, map[string]string{"twig.toml": "[output]\ncolor = \"sometimes\"\n"})
	if _, _, err := execute(t, "version"); err == nil || !strings.Contains(err.Error(), "[output].color") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestInit(t *testing.T) {
	dir := writeTree(t, nil)
	stdout, _, err := execute(t, "init", "site")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stdout, "Initialized twig project in site") {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "site", "twig.toml")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "init", "site"); err == nil {
		t.Fatal("second init must fail")
	}
}

func TestVersionJSON(t *testing.T) {
	writeTree(t, nil)
	stdout, _, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "twig" || payload.Version == "" || payload.GitCommit == "" {
		t.Errorf("unexpected payload %+v", payload)
	}
	if strings.Contains(payload.Version, "\x1b[") {
		t.Error("json version must not be coloured")
	}
}

func TestTraceToFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.twig": "{{ a }}"})
	tracePath := filepath.Join(dir, "trace.ndjson")
	if _, _, err := execute(t, "check", "--trace", tracePath, "--trace-level", "debug", "a.twig"); err != nil {
		t.Fatalf("check: %v", err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{`"check"`, `"lex"`, `"mode:expression"`} {
		if !strings.Contains(text, want) {
			t.Errorf("trace missing %s:\n%s", want, text)
		}
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.twig": "{{ a }}"})
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	if _, _, err := execute(t, "check", "--cpu-profile", cpu, "--mem-profile", mem, "a.twig"); err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, p := range []string{cpu, mem} {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Errorf("profile %s not written: %v", p, err)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if shouldUseTUI(uiModeOff, "pretty") || !shouldUseTUI(uiModeOn, "msgpack") {
		t.Error("explicit modes must win")
	}
}
