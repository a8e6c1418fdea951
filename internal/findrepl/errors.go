package findrepl

import "errors"

// Invocation errors. A session that returns one of these has not touched the record.
var (
	ErrNilRecord           = errors.New("findrepl: nil record")
	ErrEmptyPattern        = errors.New("findrepl: empty search pattern")
	ErrWhitespaceWholeWord = errors.New("findrepl: whole-word search needs a non-whitespace pattern")
)

// ErrFieldTooLarge is reported when a rewrite would grow a field past its output limit.
// The field keeps its original value.
var ErrFieldTooLarge = errors.New("findrepl: rewritten field exceeds size limit")
