package services

// Decoder turns a file on disk into plain text for one family of formats.
// Available reports whether the backend could be initialised at start-up;
// an unavailable decoder makes its formats unsupported rather than failing.
type Decoder interface {
	Formats() []string
	Available() bool
	Decode(path string) (string, error)
}
