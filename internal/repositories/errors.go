package repositories

import "errors"

// ErrNotFound is wrapped into every "no such record" error returned by a
// repository, so handlers can map it to a 404 with errors.Is instead of
// matching message strings.
var ErrNotFound = errors.New("not found")
