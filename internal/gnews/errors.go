package gnews

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies fetch failures for the retry policy. Anything that is not
// recognizably a throttling signal is transient: the worst outcome of a page
// is zero items, never a crashed run.
type Kind int

const (
	KindTransient Kind = iota
	KindRateLimit
)

// FetchError is a classified failure from one page fetch.
type FetchError struct {
	Kind Kind
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	label := "transient"
	if e.Kind == KindRateLimit {
		label = "rate limit"
	}
	return fmt.Sprintf("page %d: %s: %v", e.Page, label, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Classify maps any error to a retry kind. Typed fetch errors carry their
// kind; for everything else the failure signature is sniffed for a 429 or an
// equivalent "too many requests" marker.
func Classify(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") {
		return KindRateLimit
	}
	return KindTransient
}
