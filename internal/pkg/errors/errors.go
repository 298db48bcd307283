package errors

import "errors"

var (
	ErrInvalid           = errors.New("invalid request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrIndexNotFound     = errors.New("document index not found")
	ErrIndexCorrupt      = errors.New("document index corrupt")
	ErrEmbeddingService  = errors.New("embedding service failed")
	ErrGenerationService = errors.New("generation service failed")
	ErrMemoryWrite       = errors.New("conversation memory write failed")
	ErrInternal          = errors.New("internal")
)

func IsIndexNotFound(err error) bool {
	return errors.Is(err, ErrIndexNotFound)
}

func IsMemoryWrite(err error) bool {
	return errors.Is(err, ErrMemoryWrite)
}
