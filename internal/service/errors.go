package service

import "errors"

// ErrNotFound marks a missing entity. Handlers translate it to a 404;
// anything else from the service layer is a storage failure and becomes
// a 500.
var ErrNotFound = errors.New("not found")
