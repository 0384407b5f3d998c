package ai

import "errors"

// ErrNotConfigured indicates the model credential is missing.
var ErrNotConfigured = errors.New("model API key is not configured")
