package document

import "fmt"

// RangeError reports an edit whose offsets fall outside the document.
type RangeError struct {
	// Op names the rejected operation (e.g. "delete", "insert").
	Op string

	// Index and Length describe the requested span.
	Index  int
	Length int

	// DocLength is the document length at the time of the request.
	DocLength int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s [%d:%d] out of range for document length %d",
		e.Op, e.Index, e.Index+e.Length, e.DocLength)
}
