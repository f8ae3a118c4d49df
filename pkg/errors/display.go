package errors

import (
	"fmt"
	"io"
)

// PrintErrorWithHints prints errs to w, dispatching each to a
// category-specific formatter and falling back to hint-enhanced plain
// text otherwise. The single place every tridentctl command funnels its
// terminal errors through.
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}
	if ve, ok := IsValidationError(err); ok {
		if verbose {
			_, _ = fmt.Fprintf(w, "Validation Error: %s\n", ve.VerboseError())
		} else {
			_, _ = fmt.Fprintf(w, "Validation Error: %s\n", ve.Error())
		}
		return
	}
	if pse, ok := IsPartialSuccess(err); ok {
		_, _ = fmt.Fprintf(w, "Partial Success: %s\n", pse.Error())
		if verbose {
			for _, e := range pse.Errors {
				_, _ = fmt.Fprintf(w, "  - %s\n", EnhanceErrorWithHint(e))
			}
		}
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}
