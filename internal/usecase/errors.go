package usecase

import "errors"

// ErrModelUnavailable is returned when the registry has no usable handle for
// the requested role. Feature computation failures collapse into the same
// error: both are terminal for a single prediction and callers are not meant
// to distinguish them.
var ErrModelUnavailable = errors.New("model unavailable")
