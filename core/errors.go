package core

import "errors"

// ErrMalformedEntry indicates an entry that cannot be formatted at all,
// e.g. one without properties or with an unparseable publish date.
var ErrMalformedEntry = errors.New("malformed entry")
