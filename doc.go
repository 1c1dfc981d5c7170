// Package tex2pdf compiles LaTeX article directories to PDF by driving a
// TeX engine (pdflatex, xelatex, or lualatex) as an external process.
//
// # Quick Start
//
// Create a compiler and compile an article directory:
//
//	svc := tex2pdf.New()
//
//	result, err := svc.Compile(ctx, tex2pdf.Input{
//	    Dir: "articles/clase01",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", result.PDFPath)
//
// The result carries the PDF path and size, the number of passes run, and
// the warnings extracted from the engine log.
//
// # Compilation Flow
//
// A compile follows these stages:
//
//  1. Locate the TeX root (main.tex, or the first *.tex as fallback)
//  2. Optionally clean auxiliary files from previous runs
//  3. Run the engine in non-interactive mode, up to Input.Passes times,
//     with a bibtex pass in between when citations are present
//  4. Parse the engine output for errors, warnings, and rerun requests
//  5. Verify the PDF exists and clean auxiliary files on success
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	svc := tex2pdf.New(
//	    tex2pdf.WithEngine(tex2pdf.EngineXeLaTeX),
//	    tex2pdf.WithTimeout(2 * time.Minute),
//	    tex2pdf.WithPasses(3),
//	)
//
// Per-compile settings are passed via Input and override the service
// defaults for that run.
//
// # Engine Requirements
//
// Compilation requires a TeX installation on PATH. The tex2pdf CLI avoids
// this requirement by running the compile inside a TeX Live container; see
// cmd/tex2pdf.
package tex2pdf
