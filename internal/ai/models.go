package ai

import "errors"

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// temperature keeps output creative but structured.
const temperature = 0.4
