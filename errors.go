package assets

import (
	"errors"
	"fmt"

	"github.com/gogpu/assets/decode"
)

// Errors.
var (
	// ErrDuplicateName is returned by Add when the name is already queued
	// or loaded. The concrete error is *DuplicateNameError.
	ErrDuplicateName = errors.New("assets: duplicate resource name")

	// ErrLoading is returned by Add and Load while a batch is in flight.
	ErrLoading = errors.New("assets: loader is busy")

	// ErrFetch matches item errors raised while retrieving bytes.
	ErrFetch = errors.New("assets: fetch failed")

	// ErrDecode matches item errors raised by parsing middlewares.
	ErrDecode = errors.New("assets: decode failed")
)

// DuplicateNameError is returned when a resource name is added twice.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("assets: resource %q already exists", e.Name)
}

// Is reports whether target is ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// Op names the pipeline stage a LoadError occurred in.
type Op string

// Pipeline stages.
const (
	OpPrepare Op = "prepare"
	OpFetch   Op = "fetch"
	OpParse   Op = "parse"
)

// LoadError records why a single resource failed. It never aborts the
// batch; it is stored on the Resource and returned by Resource.Err.
type LoadError struct {
	Name string
	URL  string
	Kind decode.Kind
	Op   Op
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("assets: %s %q (%s): %v", e.Op, e.Name, e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches ErrFetch for fetch failures and ErrDecode for parse failures.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrFetch:
		return e.Op == OpFetch
	case ErrDecode:
		return e.Op == OpParse
	}
	return false
}
