package matcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// maxLineLength bounds the size of a single line read while scanning.
const maxLineLength = 1024 * 1024

// LineCallback is the interface for receiving matching lines.
type LineCallback interface {
	LineMatching(l *MatchLine) (abort bool, err error)
}

// MatchLine is a line that matched during a scan.
type MatchLine struct {
	Source string
	Number int // 1-based
	Text   string
}

// MatchLines collects matching lines and implements LineCallback.
type MatchLines []MatchLine

// LineMatching implements LineCallback, collecting all matching lines.
func (m *MatchLines) LineMatching(l *MatchLine) (abort bool, err error) {
	*m = append(*m, *l)
	return false, nil
}

// ScanReader matches every line of r, reporting matches to cb. Line
// terminators (\n or \r\n) are not part of the matched text. The context is
// checked between lines.
func (re *Regexp) ScanReader(ctx context.Context, source string, r io.Reader, cb LineCallback) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	n := 0
	for sc.Scan() {
		n++
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := sc.Text()
		if !re.MatchString(line) {
			continue
		}
		abort, err := cb.LineMatching(&MatchLine{Source: source, Number: n, Text: line})
		if err != nil {
			return err
		}
		if abort {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}
	return nil
}

// ScanFile matches every line of the named file, giving up once timeout has
// elapsed.
func (re *Regexp) ScanFile(path string, timeout time.Duration, cb LineCallback) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return re.ScanReader(ctx, path, f, cb)
}
