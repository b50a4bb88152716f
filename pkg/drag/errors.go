package drag

import "errors"

var (
	// ErrAlreadyDragging is returned by Arm while a drag is in progress.
	ErrAlreadyDragging = errors.New("drag already in progress")
	// ErrNotFound is returned by Arm when the item is not in the tree.
	ErrNotFound = errors.New("item not found")
	// ErrNotRendered is returned by Arm when the oracle has no rectangle for
	// the item.
	ErrNotRendered = errors.New("item is not rendered")
	// ErrPlaceholder is returned by Arm for the placeholder node.
	ErrPlaceholder = errors.New("placeholder cannot be dragged")
	// ErrInvalidNesting is returned for nesting thresholds without hysteresis.
	ErrInvalidNesting = errors.New("nesting enter threshold must exceed exit threshold")
)
