package binder

import "errors"

var (
	ErrFailedToParsePath = errors.New("failed to parse path parameters")
	ErrNilExtractor      = errors.New("extractor function is nil")
)
