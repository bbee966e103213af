package types

import "errors"

// ErrInvalidArgument marks caller mistakes (bad step table, unknown artifact kind)
var ErrInvalidArgument = errors.New("invalid argument")
