package tenant

import "errors"

// ErrNoTenant is returned when Guard is called on a context that carries
// no Principal — a handler or repository call that ran outside the
// auth middleware.
var ErrNoTenant = errors.New("no tenant in context")
