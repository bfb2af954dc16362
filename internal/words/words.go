// internal/words/words.go
//
// Root-word list management.
//
// Responsibilities:
//   - Load the root-word list from a file named by configuration, or fall back
//     to the list embedded in the binary.
//   - Cache the list after the first successful read (sync.Once).
//   - Report a missing resource distinctly from an empty list.
//
// Initialization behavior (Load):
//   1. If a path is configured (WORDS_START_FILE), read it. A missing file is
//      ErrResourceMissing; the server treats that as fatal at startup.
//   2. Otherwise use assets/start.txt.
//   An empty list is not an error: round bootstrap falls back to "silkworm".
//
// Also loads the dictionary word list (WORDS_DICTIONARY_FILE or
// assets/dictionary.txt) used to seed dictionary backends.

package words

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/robalobadob/wordscramble/assets"
)

// ErrResourceMissing means the configured word list could not be found.
var ErrResourceMissing = errors.New("words: word list resource not found")

// Source supplies root words. It satisfies game.WordSource.
type Source struct {
	path string // empty = embedded start.txt

	once sync.Once
	list []string
	err  error
}

// NewSource returns a Source reading path, or the embedded list when path is empty.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load returns the root-word list, reading it on first call.
func (s *Source) Load() ([]string, error) {
	s.once.Do(func() {
		if s.path == "" {
			s.list, s.err = assets.StartList()
			return
		}
		s.list, s.err = readWordFile(s.path)
	})
	return s.list, s.err
}

// DictionaryList returns the words used to seed a dictionary backend:
// the file at path, or the embedded dictionary when path is empty.
func DictionaryList(path string) ([]string, error) {
	if path == "" {
		return assets.DictionaryList()
	}
	return readWordFile(path)
}

// readWordFile loads one word per line from a file (trimmed, lowercased,
// blanks and comments skipped).
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceMissing, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	out, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
