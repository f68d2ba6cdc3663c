package domain

import "errors"

// ErrEmptyDocument is returned when a document carries no traces.
var ErrEmptyDocument = errors.New("document has no traces")

// ErrUnsupportedFormat is returned for document files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrTraceNotFound is returned when a trace index or document id does not exist.
var ErrTraceNotFound = errors.New("trace not found")

// ErrMissingID is returned when a document is stored without an id.
var ErrMissingID = errors.New("document missing id")
