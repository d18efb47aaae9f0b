package waveview

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by operations that need a dataset before SetData
// has succeeded.
var ErrNoData = errors.New("waveview: no dataset loaded")

// ShapeError reports input arrays whose leading dimensions disagree.
// A failed load leaves the previously loaded dataset untouched.
type ShapeError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("waveview: %s length mismatch: want %d, got %d", e.What, e.Want, e.Got)
}
