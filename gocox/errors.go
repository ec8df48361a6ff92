package gocox

import "errors"

// Errors
var (
	ErrBadBond         = errors.New("unsupported Coxeter bond value")
	ErrBadMatrix       = errors.New("bad Coxeter matrix")
	ErrBadAutomorphism = errors.New("automorphism does not preserve the Coxeter matrix")
	ErrUnknownSystem   = errors.New("unknown Coxeter system")
	ErrBadGenerator    = errors.New("generator index out of range")
	ErrBadWord         = errors.New("bad generator word")
	ErrShortBuffer     = errors.New("destination buffer shorter than element length")
	ErrSizeMismatch    = errors.New("state or one-line size does not match the Coxeter system")
	ErrBadKey          = errors.New("bad state key encoding")
	ErrBadState        = errors.New("not a numbers game state of a group element")
	ErrBadConfig       = errors.New("bad Coxeter system config")
)
