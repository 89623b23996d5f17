package scap

import "errors"

// Category errors for the data stream layer. Parsers and the resolver wrap
// these with the offending identifier so callers can match with errors.Is
// while still seeing which element failed.
var (
	// ErrUnexpectedRoot indicates the document root is not a SCAP 1.2
	// data-stream-collection element.
	ErrUnexpectedRoot = errors.New("unexpected root element")

	// ErrDuplicateComponentID indicates two catalog entries declare the
	// same component identifier.
	ErrDuplicateComponentID = errors.New("duplicate component id")

	// ErrDanglingReference indicates a component-ref whose target is
	// absent from the component catalog.
	ErrDanglingReference = errors.New("dangling component reference")

	// ErrStreamNotFound indicates the requested data stream id is not
	// declared by the collection.
	ErrStreamNotFound = errors.New("data stream not found")

	// ErrIntegrity indicates a component failed digest verification.
	ErrIntegrity = errors.New("component integrity violation")

	// ErrUnsupportedAlgorithm indicates a catalog entry names a digest
	// algorithm this tool does not implement.
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

	// ErrMissingDigest indicates a catalog entry carries no digest while
	// the resolver runs in strict mode.
	ErrMissingDigest = errors.New("catalog entry has no digest")

	// ErrRemoteDisabled indicates a component-ref points outside the
	// document and no remote fetcher is configured.
	ErrRemoteDisabled = errors.New("remote component references are disabled")
)
