package tvheadend

import "fmt"

// Kind classifies a fetch failure.
type Kind int

const (
	// KindTransport covers network failures and non-2xx responses.
	KindTransport Kind = iota

	// KindDecode covers JSON bodies that do not match the expected schema.
	KindDecode
)

// String returns the kind name used in log output.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// FetchError wraps a failed grid fetch with its classification and URL.
type FetchError struct {
	Kind Kind
	URL  string
	Err  error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error fetching %s: %v", e.Kind, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}
