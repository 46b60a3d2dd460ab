package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"twig/internal/lexer"
)

func TestFormatTokensPretty(t *testing.T) {
	res := lexer.Lex(`a{{ "x#{y}" }}`, "t.twig")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, res.Tokens); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`  1: Text                         "a" at 1:1`,
		`  2: Separator(ExpressionStart)   "{{" at 1:2`,
		`  3: InterpolatedString           "xy" at 1:5 (leading: Space)`,
		`      1: Literal(StringLiteral)       "x" at 1:6`,
		`      2: Identifier                   "y" at 1:9`,
		`  4: Separator(ExpressionEnd)     "}}" at 1:13 (leading: Space)`,
	} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("missing line %q in:\n%s", want, out)
		}
	}
}

func TestFormatTokensJSONAndMsgpackAgree(t *testing.T) {
	res := lexer.Lex("{% with x = 'v' %}{{ x }}", "t.twig")

	var jbuf bytes.Buffer
	if err := FormatTokensJSON(&jbuf, res.Tokens); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var fromJSON []TokenOutput
	if err := json.Unmarshal(jbuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("decode json: %v", err)
	}

	var mbuf bytes.Buffer
	if err := FormatTokensMsgpack(&mbuf, res.Tokens); err != nil {
		t.Fatalf("FormatTokensMsgpack: %v", err)
	}
	var fromMsgpack []TokenOutput
	if err := msgpack.Unmarshal(mbuf.Bytes(), &fromMsgpack); err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}

	if len(fromJSON) != len(res.Tokens) || len(fromMsgpack) != len(res.Tokens) {
		t.Fatalf("json=%d msgpack=%d tokens=%d", len(fromJSON), len(fromMsgpack), len(res.Tokens))
	}
	for i := range fromJSON {
		j, m := fromJSON[i], fromMsgpack[i]
		if j.Kind != m.Kind || j.Payload != m.Payload || j.Value != m.Value || *j.Start != *m.Start {
			t.Errorf("token %d differs: json=%+v msgpack=%+v", i, j, m)
		}
	}
	if got := fromJSON[4]; got.Kind != "Operator" || got.Payload != "Assignment" || got.Value != "=" {
		t.Errorf("unexpected token 4: %+v", got)
	}
	if len(fromJSON[4].Leading) != 1 || fromJSON[4].Leading[0].Value != " " {
		t.Errorf("leading trivia lost: %+v", fromJSON[4].Leading)
	}
}

func TestFormatFiles(t *testing.T) {
	files := []FileTokens{
		{Path: "a.twig", Tokens: lexer.Lex("x", "a.twig").Tokens},
		{Path: "b.twig", Tokens: lexer.Lex("{{ y }}", "b.twig").Tokens},
	}

	var pretty bytes.Buffer
	if err := FormatFilesPretty(&pretty, files); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(pretty.String(), "== a.twig ==\n  1: Text") || !strings.Contains(pretty.String(), "\n\n== b.twig ==\n") {
		t.Errorf("unexpected pretty output:\n%s", pretty.String())
	}

	var mbuf bytes.Buffer
	if err := FormatFilesMsgpack(&mbuf, files); err != nil {
		t.Fatal(err)
	}
	var decoded []FileTokensOutput
	if err := msgpack.Unmarshal(mbuf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || decoded[1].File != "b.twig" || decoded[1].Tokens[2].Value != "y" {
		t.Errorf("unexpected decoded files %+v", decoded)
	}

	var jbuf bytes.Buffer
	if err := FormatFilesJSON(&jbuf, files); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(jbuf.String(), `"file": "a.twig"`) {
		t.Errorf("unexpected json:\n%s", jbuf.String())
	}
}
