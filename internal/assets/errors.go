package assets

import (
	"errors"
	"fmt"
)

// Kind names the asset a load was for.
type Kind int

const (
	KindModel Kind = iota
	KindEnvironment
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindEnvironment:
		return "environment map"
	default:
		return fmt.Sprintf("asset(%d)", int(k))
	}
}

var (
	// ErrAssetLoad matches every *LoadError through errors.Is.
	ErrAssetLoad = errors.New("asset load failed")

	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEmptyModel        = errors.New("model has no triangle meshes")
)

// LoadError is the typed failure outcome of a model or environment load.
type LoadError struct {
	Kind   Kind
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Kind, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports ErrAssetLoad so callers can test for any load failure.
func (e *LoadError) Is(target error) bool { return target == ErrAssetLoad }
