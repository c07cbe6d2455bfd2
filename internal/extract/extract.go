// Package extract provides the text-extraction boundary used by the document
// agent. Inputs may arrive as raw PDF bytes or as text that was squeezed
// through a single-byte encoding on the way in; both are restored to plain
// text before the agent prompts the inference collaborator.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrNoText indicates no readable text could be recovered from the input.
var ErrNoText = errors.New("no readable text in document")

// TextExtractor converts raw document bytes to plain text.
// Failures propagate as errors; the document agent encodes them as data.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

var pdfHeader = []byte("%PDF-")

type pdfExtractor struct{}

// NewPDF creates the production TextExtractor. PDF inputs are validated with
// pdfcpu before text recovery; non-PDF inputs are treated as plain text.
func NewPDF() TextExtractor {
	return pdfExtractor{}
}

func (pdfExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoText
	}

	if !bytes.HasPrefix(data, pdfHeader) {
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", ErrNoText
		}
		return text, nil
	}

	// pdfcpu confirms the structure is readable; it does not expose a text
	// extraction API, so recovery below is a best-effort scan of printable
	// runs in the content bytes.
	if _, err := api.PageCount(bytes.NewReader(data), nil); err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	text := printableRuns(data)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// printableRuns collects runs of printable single-byte characters of at
// least minRun length, joined by newlines.
func printableRuns(data []byte) string {
	const minRun = 4

	var sb strings.Builder
	var run []byte

	flush := func() {
		if len(run) >= minRun {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.Write(run)
		}
		run = run[:0]
	}

	for _, b := range data {
		r := rune(b)
		if r == ' ' || r == '\t' || unicode.IsPrint(r) && r < unicode.MaxASCII {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()

	return strings.TrimSpace(sb.String())
}
