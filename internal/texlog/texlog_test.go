package texlog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jcastellanos/go-tex2pdf/internal/texlog"
)

// ---------------------------------------------------------------------------
// TestParse - Error extraction
// ---------------------------------------------------------------------------

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		output     string
		wantTotal  int
		wantFirst  texlog.ErrorRecord
		wantErrors int
	}{
		{
			name: "bang error with line marker",
			output: strings.Join([]string{
				"! Undefined control sequence.",
				"l.12 \\badcmd",
				"",
			}, "\n"),
			wantTotal:  1,
			wantErrors: 1,
			wantFirst:  texlog.ErrorRecord{Line: 12, Message: "Undefined control sequence."},
		},
		{
			name:       "file-line-error format",
			output:     "./main.tex:7: Missing $ inserted.\n",
			wantTotal:  1,
			wantErrors: 1,
			wantFirst:  texlog.ErrorRecord{File: "./main.tex", Line: 7, Message: "Missing $ inserted."},
		},
		{
			name: "missing package",
			output: strings.Join([]string{
				"! LaTeX Error: File `tikz.sty' not found.",
				"l.3 \\usepackage{tikz}",
			}, "\n"),
			wantTotal:  1,
			wantErrors: 1,
			wantFirst:  texlog.ErrorRecord{Line: 3, Message: "LaTeX Error: File `tikz.sty' not found."},
		},
		{
			name:       "clean run",
			output:     "Output written on main.pdf (3 pages, 41824 bytes).\n",
			wantTotal:  0,
			wantErrors: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := texlog.Parse(strings.NewReader(tt.output))

			if report.TotalErrors != tt.wantTotal {
				t.Errorf("TotalErrors = %d, want %d", report.TotalErrors, tt.wantTotal)
			}
			if len(report.Errors) != tt.wantErrors {
				t.Fatalf("len(Errors) = %d, want %d", len(report.Errors), tt.wantErrors)
			}
			if tt.wantErrors > 0 && report.Errors[0] != tt.wantFirst {
				t.Errorf("Errors[0] = %+v, want %+v", report.Errors[0], tt.wantFirst)
			}
		})
	}
}

func TestParse_ErrorCap(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteString("! Undefined control sequence.\n")
		b.WriteString("l.1 \\x\n")
	}

	report := texlog.Parse(strings.NewReader(b.String()))

	if report.TotalErrors != 12 {
		t.Errorf("TotalErrors = %d, want 12", report.TotalErrors)
	}
	if len(report.Errors) != texlog.MaxReportedErrors {
		t.Errorf("len(Errors) = %d, want %d", len(report.Errors), texlog.MaxReportedErrors)
	}
	if !report.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
}

// ---------------------------------------------------------------------------
// TestParse - Warnings, bad boxes, rerun detection
// ---------------------------------------------------------------------------

func TestParse_WarningsAndBadBoxes(t *testing.T) {
	t.Parallel()

	output := strings.Join([]string{
		"LaTeX Warning: Citation 'knuth84' on page 1 undefined on input line 9.",
		"Overfull \\hbox (15.3pt too wide) in paragraph at lines 23--25",
		"Underfull \\vbox (badness 10000) has occurred while \\output is active",
		"LaTeX Warning: There were undefined references.",
	}, "\n")

	report := texlog.Parse(strings.NewReader(output))

	if report.HasErrors() {
		t.Error("HasErrors() = true, want false")
	}
	if len(report.Warnings) != 2 {
		t.Errorf("len(Warnings) = %d, want 2", len(report.Warnings))
	}
	if report.BadBoxes != 2 {
		t.Errorf("BadBoxes = %d, want 2", report.BadBoxes)
	}
}

func TestParse_NeedsRerun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"cross references", "LaTeX Warning: Rerun to get cross-references right.", true},
		{"labels changed", "LaTeX Warning: Label(s) may have changed. Rerun to get cross-references right.", true},
		{"clean", "Output written on main.pdf (1 page, 1024 bytes).", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := texlog.Parse(strings.NewReader(tt.line))
			if report.NeedsRerun != tt.want {
				t.Errorf("NeedsRerun = %v, want %v", report.NeedsRerun, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasCitations - Aux file citation scanning
// ---------------------------------------------------------------------------

func TestHasCitations(t *testing.T) {
	t.Parallel()

	withCitations := []byte("\\relax\n\\citation{knuth84}\n\\bibdata{refs}\n")
	without := []byte("\\relax\n\\gdef \\@abspage@last{1}\n")

	if !texlog.HasCitations(withCitations) {
		t.Error("HasCitations(with) = false, want true")
	}
	if texlog.HasCitations(without) {
		t.Error("HasCitations(without) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestWriteExcerpt - Source context around an error
// ---------------------------------------------------------------------------

func TestWriteExcerpt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "main.tex")
	content := strings.Join([]string{
		"\\documentclass{article}",
		"\\begin{document}",
		"Hello",
		"\\badcmd",
		"World",
		"\\end{document}",
	}, "\n")
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	rec := texlog.ErrorRecord{File: src, Line: 4, Message: "Undefined control sequence."}
	if err := texlog.WriteExcerpt(&buf, rec, false); err != nil {
		t.Fatalf("WriteExcerpt() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\\badcmd") {
		t.Errorf("excerpt missing failing line:\n%s", out)
	}
	if !strings.Contains(out, " > ") {
		t.Errorf("excerpt missing line marker:\n%s", out)
	}
	if !strings.Contains(out, "\\begin{document}") || !strings.Contains(out, "\\end{document}") {
		t.Errorf("excerpt missing context lines:\n%s", out)
	}
}

func TestWriteExcerpt_NoLocation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rec := texlog.ErrorRecord{Message: "Emergency stop."}

	if err := texlog.WriteExcerpt(&buf, rec, false); err != nil {
		t.Fatalf("WriteExcerpt() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for locationless error, got %q", buf.String())
	}
}

func TestWriteExcerpt_MissingFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rec := texlog.ErrorRecord{File: filepath.Join(t.TempDir(), "gone.tex"), Line: 1}

	if err := texlog.WriteExcerpt(&buf, rec, false); err == nil {
		t.Error("WriteExcerpt() error = nil, want error for missing file")
	}
}

func TestWriteExcerpt_Colorized(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "main.tex")
	if err := os.WriteFile(src, []byte("\\documentclass{article}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	rec := texlog.ErrorRecord{File: src, Line: 1}
	if err := texlog.WriteExcerpt(&buf, rec, true); err != nil {
		t.Fatalf("WriteExcerpt() error = %v", err)
	}
	// ANSI escape sequences mean chroma took the highlight path.
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI output, got %q", buf.String())
	}
}
