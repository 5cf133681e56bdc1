package xcodeproj

import "errors"

// Load-time errors are fatal: Open never returns a partially loaded
// project. Mutation-time lookups express absence as nil results instead.
var (
	// ErrUnsupportedVersion means the document's archiveVersion or
	// objectVersion exceeds what this package knows how to handle.
	// Refusing early beats corrupting the file on a later save.
	ErrUnsupportedVersion = errors.New("unsupported project version")

	// ErrMissingRootObject means the rootObject identifier has no
	// attribute bag in the objects dictionary.
	ErrMissingRootObject = errors.New("missing root object")

	// ErrUnknownIsa means an attribute bag carries an isa tag that the
	// catalog has no Kind for.
	ErrUnknownIsa = errors.New("unknown object isa")

	// ErrDuplicateID means an attempt to register an identifier that is
	// already taken. Under correct operation this indicates a bug in the
	// caller or a corrupted document.
	ErrDuplicateID = errors.New("duplicate object ID")

	// ErrDanglingReference means a reference attribute names an
	// identifier with no attribute bag in the document.
	ErrDanglingReference = errors.New("dangling object reference")

	// ErrMissingSDK means a framework helper could not resolve the
	// platform SDK from the target's build settings.
	ErrMissingSDK = errors.New("cannot resolve platform SDK")
)
