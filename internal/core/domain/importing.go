package domain

import (
	"fmt"
	"strings"
)

// ImportError records why one file in a batch was not imported.
type ImportError struct {
	File string
	Err  error
}

// Error implements error.
func (e ImportError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e ImportError) Unwrap() error {
	return e.Err
}

// ImportReport is the aggregate result of a batch import.
type ImportReport struct {
	// DocumentIDs lists the registered documents in input order.
	DocumentIDs []int64

	// Errors lists one entry per failing file.
	Errors []ImportError
}

// Imported returns the number of files imported.
func (r ImportReport) Imported() int {
	return len(r.DocumentIDs)
}

// String renders the report as a unified message for the user.
func (r ImportReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "imported %d file(s)", r.Imported())
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, ", %d failed:", len(r.Errors))
		for _, e := range r.Errors {
			b.WriteString("\n  ")
			b.WriteString(e.Error())
		}
	}
	return b.String()
}
