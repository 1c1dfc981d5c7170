// Package texlog parses TeX engine console output and log files.
//
// TeX engines report failures on stdout rather than via exit codes alone:
// a run can exit zero with a broken PDF, or exit nonzero with the real
// cause buried hundreds of lines up. This package extracts the error and
// warning lines a user actually needs, detects when another pass is
// required, and reads \citation entries from .aux files to decide whether
// a bibtex pass is warranted.
package texlog

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// MaxReportedErrors caps how many errors are surfaced to the user.
// Beyond this, TeX error cascades repeat the same root cause.
const MaxReportedErrors = 5

// ErrorRecord is a single error extracted from engine output.
type ErrorRecord struct {
	File    string // source file when known (file-line-error format)
	Line    int    // 1-based line number, 0 when unknown
	Message string
}

// Report summarizes one engine pass.
type Report struct {
	Errors      []ErrorRecord // capped at MaxReportedErrors
	TotalErrors int           // including errors beyond the cap
	Warnings    []string      // LaTeX Warning: lines
	BadBoxes    int           // Overfull/Underfull box count
	NeedsRerun  bool          // cross-references changed, run again
}

// HasErrors reports whether any error was extracted.
func (r *Report) HasErrors() bool {
	return r.TotalErrors > 0
}

var (
	// ./main.tex:12: Undefined control sequence.  (-file-line-error format)
	fileLineErrPattern = regexp.MustCompile(`^(\S+\.tex):(\d+): (.+)$`)

	// l.12 \badcmd  (line marker following a "! ..." error)
	lineMarkerPattern = regexp.MustCompile(`^l\.(\d+)\b`)

	badBoxPattern = regexp.MustCompile(`^(Overfull|Underfull) \\[hv]box`)

	rerunPhrases = []string{
		"Rerun to get cross-references right",
		"Rerun to get the bars right",
		"Label(s) may have changed",
		"Rerun to get outlines right",
	}
)

// Parse scans engine console output (or a .log file) and builds a Report.
func Parse(r io.Reader) *Report {
	report := &Report{}
	scanner := bufio.NewScanner(r)
	// TeX logs wrap at 79 columns but single tokens can exceed the default
	// scanner buffer when shell-escape output is interleaved.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending *ErrorRecord

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "! "):
			pending = flush(report, pending)
			pending = &ErrorRecord{Message: strings.TrimPrefix(line, "! ")}

		case fileLineErrPattern.MatchString(line):
			pending = flush(report, pending)
			m := fileLineErrPattern.FindStringSubmatch(line)
			n, _ := strconv.Atoi(m[2])
			pending = &ErrorRecord{File: m[1], Line: n, Message: m[3]}

		case pending != nil && lineMarkerPattern.MatchString(line):
			if pending.Line == 0 {
				m := lineMarkerPattern.FindStringSubmatch(line)
				pending.Line, _ = strconv.Atoi(m[1])
			}
			pending = flush(report, pending)

		case strings.HasPrefix(line, "LaTeX Warning:"):
			report.Warnings = append(report.Warnings, strings.TrimSpace(strings.TrimPrefix(line, "LaTeX Warning:")))

		case badBoxPattern.MatchString(line):
			report.BadBoxes++
		}

		for _, phrase := range rerunPhrases {
			if strings.Contains(line, phrase) {
				report.NeedsRerun = true
				break
			}
		}
	}

	flush(report, pending)
	return report
}

// flush records a pending error and returns nil for reassignment.
func flush(report *Report, rec *ErrorRecord) *ErrorRecord {
	if rec == nil {
		return nil
	}
	report.TotalErrors++
	if len(report.Errors) < MaxReportedErrors {
		report.Errors = append(report.Errors, *rec)
	}
	return nil
}

// citationPattern matches \citation{key} entries written to .aux files.
var citationPattern = regexp.MustCompile(`\\citation\{[^}]+\}`)

// HasCitations reports whether aux file content contains citation entries,
// which means a bibtex pass is needed before the next engine run.
func HasCitations(auxContent []byte) bool {
	return citationPattern.Match(auxContent)
}
