package repository

import "errors"

// ErrNotFound is returned when the catalog API reports an unknown product.
var ErrNotFound = errors.New("not found")
