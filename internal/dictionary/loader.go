package dictionary

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultMaxWordLength is the loader cutoff used when none is configured.
const DefaultMaxWordLength = 30

//go:embed default_words.txt
var embeddedWords string

// Loader reads a newline-delimited word list. An empty Path falls back to
// the small embedded list so the server boots without configuration.
type Loader struct {
	Path          string
	MaxWordLength int
}

// Load builds a fresh Index from the configured source.
func (l Loader) Load(ctx context.Context) (*Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		words []string
		err   error
	)
	if l.Path == "" {
		words, err = ReadWords(strings.NewReader(embeddedWords), l.maxLen())
	} else {
		words, err = l.readFile()
	}
	if err != nil {
		return nil, err
	}
	return NewIndex(words), nil
}

func (l Loader) readFile() ([]string, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	words, err := ReadWords(f, l.maxLen())
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", l.Path, err)
	}
	return words, nil
}

func (l Loader) maxLen() int {
	if l.MaxWordLength <= 0 {
		return DefaultMaxWordLength
	}
	return l.MaxWordLength
}

// ReadWords returns one lowercased word per non-blank line, dropping words
// longer than maxLen characters.
func ReadWords(r io.Reader, maxLen int) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		if maxLen > 0 && utf8.RuneCountInString(w) > maxLen {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}
