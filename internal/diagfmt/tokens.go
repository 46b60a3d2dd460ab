package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"twig/internal/source"
	"twig/internal/token"
)

// TriviaOutput is the serialised form of token.Trivia.
type TriviaOutput struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Value string `json:"value" msgpack:"value"`
}

// TokenOutput is the serialised form of token.Token shared by JSON and msgpack.
type TokenOutput struct {
	Kind     string         `json:"kind" msgpack:"kind"`
	Payload  string         `json:"payload,omitempty" msgpack:"payload,omitempty"`
	Value    string         `json:"value" msgpack:"value"`
	Start    *source.Marker `json:"start,omitempty" msgpack:"start,omitempty"`
	Leading  []TriviaOutput `json:"leading,omitempty" msgpack:"leading,omitempty"`
	Children []TokenOutput  `json:"children,omitempty" msgpack:"children,omitempty"`
}

// BuildTokensOutput converts tokens into their serialised form.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for i := range tokens {
		out = append(out, tokenOutput(&tokens[i]))
	}
	return out
}

func tokenOutput(tok *token.Token) TokenOutput {
	o := TokenOutput{
		Kind:    tok.Kind.String(),
		Payload: tok.Payload(),
		Value:   tok.Text(),
	}
	if tok.HasStart {
		start := tok.Start
		o.Start = &start
	}
	for _, tv := range tok.Leading {
		o.Leading = append(o.Leading, TriviaOutput{Kind: tv.Kind.String(), Value: string(tv.Value)})
	}
	if len(tok.Children) > 0 {
		o.Children = BuildTokensOutput(tok.Children)
	}
	return o
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	return formatTokensPretty(w, tokens, 0)
}

func formatTokensPretty(w io.Writer, tokens []token.Token, depth int) error {
	indent := strings.Repeat("    ", depth)
	for i := range tokens {
		tok := &tokens[i]
		label := tok.Kind.String()
		if p := tok.Payload(); p != "" {
			label += "(" + p + ")"
		}

		// Выводим информацию о токене
		if _, err := fmt.Fprintf(w, "%s%3d: %-28s %q", indent, i+1, label, tok.Text()); err != nil {
			return err
		}
		if tok.HasStart {
			fmt.Fprintf(w, " at %s", tok.Start)
		}
		if len(tok.Leading) > 0 {
			kinds := make([]string, 0, len(tok.Leading))
			for _, tv := range tok.Leading {
				kinds = append(kinds, tv.Kind.String())
			}
			fmt.Fprintf(w, " (leading: %s)", strings.Join(kinds, ", "))
		}
		fmt.Fprintln(w)

		if len(tok.Children) > 0 {
			if err := formatTokensPretty(w, tok.Children, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}

// FormatTokensMsgpack пишет токены компактным бинарным msgpack-потоком.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(BuildTokensOutput(tokens))
}

// FileTokens pairs a file label with its tokens for directory dumps.
type FileTokens struct {
	Path   string
	Tokens []token.Token
}

// FileTokensOutput is the serialised form of FileTokens.
type FileTokensOutput struct {
	File   string        `json:"file" msgpack:"file"`
	Tokens []TokenOutput `json:"tokens" msgpack:"tokens"`
}

// BuildFilesOutput converts per-file token lists into their serialised form.
func BuildFilesOutput(files []FileTokens) []FileTokensOutput {
	out := make([]FileTokensOutput, 0, len(files))
	for _, f := range files {
		out = append(out, FileTokensOutput{File: f.Path, Tokens: BuildTokensOutput(f.Tokens)})
	}
	return out
}

// FormatFilesPretty prints a "== path ==" header before every file.
func FormatFilesPretty(w io.Writer, files []FileTokens) error {
	for i, f := range files {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", f.Path); err != nil {
			return err
		}
		if err := FormatTokensPretty(w, f.Tokens); err != nil {
			return err
		}
	}
	return nil
}

// FormatFilesJSON выводит токены нескольких файлов одним JSON-массивом.
func FormatFilesJSON(w io.Writer, files []FileTokens) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildFilesOutput(files))
}

// FormatFilesMsgpack is the msgpack counterpart of FormatFilesJSON.
func FormatFilesMsgpack(w io.Writer, files []FileTokens) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(BuildFilesOutput(files))
}
