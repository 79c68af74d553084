package service

import "errors"

// ErrInvalidRequest marks malformed or missing input; transport maps it
// to 400. Wrap with %w and a field hint.
var ErrInvalidRequest = errors.New("invalid request")
