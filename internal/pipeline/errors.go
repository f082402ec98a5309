package pipeline

import (
	"errors"

	"github.com/FACorreiaa/bank-statement-parser/internal/parser"
)

var (
	// ErrPDFUnreadable means the file decoded to no text at all, the
	// signature of a password-protected or image-only PDF.
	ErrPDFUnreadable = errors.New("pdf contains no extractable text")

	// ErrNoTransactions is re-exported so callers can classify failures
	// without importing the parser.
	ErrNoTransactions = parser.ErrNoTransactions

	// ErrDialectUndetected wraps the parser's detection failure.
	ErrDialectUndetected = parser.ErrUnknownDialect
)
