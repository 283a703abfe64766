package domain

import "errors"

var (
	// ErrNotTrained signals predict was called before fit or load.
	ErrNotTrained = errors.New("pipeline not trained")
	// ErrEmptyTrainingSet signals fit was given no examples.
	ErrEmptyTrainingSet = errors.New("empty training set")
	// ErrLengthMismatch signals fit was given mismatched documents and labels.
	ErrLengthMismatch = errors.New("documents and labels length mismatch")
	// ErrDimensionMismatch signals a feature vector of the wrong dimension.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	// ErrModelIncompatible signals a serialized pipeline that does not match
	// the expected shape (bad version, dimension, or truncated blob).
	ErrModelIncompatible = errors.New("serialized pipeline incompatible")
)
