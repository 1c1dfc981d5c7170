package texlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// ExcerptContext is how many lines are shown around the failing line.
const ExcerptContext = 2

// WriteExcerpt writes the source lines around rec.Line from rec.File to w.
// When colorize is true the excerpt is syntax-highlighted for ANSI
// terminals; highlighting failures fall back to plain text silently.
// Records without file/line information produce no output and no error.
func WriteExcerpt(w io.Writer, rec ErrorRecord, colorize bool) error {
	if rec.File == "" || rec.Line <= 0 {
		return nil
	}

	content, err := os.ReadFile(rec.File) // #nosec G304 -- path comes from the user's own log
	if err != nil {
		return fmt.Errorf("reading source for excerpt: %w", err)
	}

	lines := strings.Split(string(content), "\n")
	if rec.Line > len(lines) {
		return nil
	}

	start := rec.Line - 1 - ExcerptContext
	if start < 0 {
		start = 0
	}
	end := rec.Line + ExcerptContext
	if end > len(lines) {
		end = len(lines)
	}

	for i := start; i < end; i++ {
		marker := "   "
		if i == rec.Line-1 {
			marker = " > "
		}
		fmt.Fprintf(w, "%4d%s", i+1, marker)
		writeLine(w, lines[i], colorize)
	}
	return nil
}

// writeLine writes a single source line, highlighted when possible.
func writeLine(w io.Writer, line string, colorize bool) {
	if colorize {
		if err := quick.Highlight(w, line+"\n", "latex", "terminal256", "monokai"); err == nil {
			return
		}
	}
	fmt.Fprintln(w, line)
}
