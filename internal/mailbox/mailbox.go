package mailbox

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/emersion/go-imap/utf7"
	"github.com/emersion/go-mbox"
	"go.uber.org/zap"

	"github.com/emurenMRz/list-unsubscribe/internal/unsubscribe"
)

// Entry is the extraction result for one message of a mailbox.
type Entry struct {
	Mailbox string // UTF-8 mailbox name
	Index   int    // position of the message in the mbox file
	Result  unsubscribe.Result
}

// Scanner runs an Extractor over every message of mbox files.
type Scanner struct {
	Extractor *unsubscribe.Extractor
	Logger    *zap.Logger
}

func (s *Scanner) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Name decodes an mbox file name to a UTF-8 mailbox name. Files on disk are
// IMAP-UTF7 encoded; names that do not decode are returned as is.
func Name(path string) string {
	base := filepath.Base(path)
	decoded, err := utf7.Encoding.NewDecoder().String(base)
	if err != nil {
		return base
	}
	return decoded
}

// Paths expands path into the mbox files to scan. A directory yields its
// regular files in name order.
func Paths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, file := range files {
		if file.Type().IsRegular() {
			paths = append(paths, filepath.Join(path, file.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ScanFile extracts the unsubscribe URL of every message in the mbox file at
// path, calling fn once per message in file order.
func (s *Scanner) ScanFile(path string, fn func(Entry) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open mbox: %w", err)
	}
	defer f.Close()

	return s.Scan(Name(path), f, fn)
}

// Scan reads mbox data from r. name labels the resulting entries.
func (s *Scanner) Scan(name string, r io.Reader, fn func(Entry) error) error {
	extractor := s.Extractor
	if extractor == nil {
		extractor = &unsubscribe.Extractor{}
	}

	reader := mbox.NewReader(r)
	for i := 0; ; i++ {
		msg, err := reader.NextMessage()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read message %d in %s: %w", i, name, err)
		}

		result, err := extractor.Read(msg)
		if err != nil {
			return fmt.Errorf("read message %d in %s: %w", i, name, err)
		}
		s.logger().Debug("scanned message",
			zap.String("mailbox", name),
			zap.Int("index", i),
			zap.Stringer("status", result.Status))

		if err := fn(Entry{Mailbox: name, Index: i, Result: result}); err != nil {
			return err
		}
	}
}
