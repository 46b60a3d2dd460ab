package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"plain text",
	"{{ 1 + 2 }}",
	"{% for item in items %}{{ item.name|upper }}{% endfor %}",
	"{# comment #}",
	"{{ \"a#{1+1}b\" }}",
	"{{ \"#{ {a: 1} }\" }}",
	"{{ 'raw \\' quote' }}",
	"{{ \"\\x41\\x4a\" }}",
	"{{ a ? b : c ?: d }}",
	"{{ x ** 2 >= 10 and not y }}",
	"{{ 1.2.3 }}",
	"{{ @ }}",
	"{% set x = 1 # trailing\n%}",
	"{{-x-}}{%- y -%}{#- z -#}",
	"line\r\nbreak\rcr\n{{ a }}",
	"{{ \"unterminated",
	"{{ \"#{ a\" }}",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.twig файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".twig" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
