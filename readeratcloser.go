package hdthermal

import "io"

// ReaderAtCloser is what archive readers need: random access to a file whose
// size is known up front, plus a way to release it.
type ReaderAtCloser interface {
	io.Reader
	io.ReaderAt
	io.Closer
}
