package services

import "errors"

// errNotFound signals a missing record out of a Store.Update closure so the
// handler can answer 404 instead of 500.
var errNotFound = errors.New("not found")
