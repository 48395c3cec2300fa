package series

import (
	"errors"
	"fmt"
)

// The three outcomes a caller must tell apart (and present differently):
// the source knows no such symbol, the symbol has history but none in the
// requested range, or the fetch itself failed.
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrNoDataInRange  = errors.New("no data in range")
)

// FetchError reports a transport or source failure, preserving the cause
// for diagnostics. Matched with errors.As.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }
