package dom

import "errors"

var (
	// ErrElementNotFound is returned when a lookup matches no element.
	ErrElementNotFound = errors.New("element not found")

	// ErrForeignElement is returned when an element handle does not belong to the document.
	ErrForeignElement = errors.New("element does not belong to this document")

	// ErrDuplicateID is returned when an element id is already in use.
	ErrDuplicateID = errors.New("element id already in use")
)
