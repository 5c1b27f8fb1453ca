package gnews

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTypedErrors(t *testing.T) {
	rl := &FetchError{Kind: KindRateLimit, Page: 5, Err: errors.New("status 429")}
	tr := &FetchError{Kind: KindTransient, Page: 2, Err: errors.New("connection reset")}

	assert.Equal(t, KindRateLimit, Classify(rl))
	assert.Equal(t, KindTransient, Classify(tr))
}

func TestClassifyWrappedTypedError(t *testing.T) {
	inner := &FetchError{Kind: KindRateLimit, Page: 1, Err: errors.New("captcha interstitial")}
	wrapped := fmt.Errorf("fetch: %w", inner)

	assert.Equal(t, KindRateLimit, Classify(wrapped))
}

func TestClassifySniffsMessageSignature(t *testing.T) {
	assert.Equal(t, KindRateLimit, Classify(errors.New("HTTP 429 returned")))
	assert.Equal(t, KindRateLimit, Classify(errors.New("server said: Too Many Requests")))
}

func TestClassifyUnrecognizedIsTransient(t *testing.T) {
	assert.Equal(t, KindTransient, Classify(errors.New("EOF")))
	assert.Equal(t, KindTransient, Classify(errors.New("dial tcp: i/o timeout")))
}

func TestFetchErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &FetchError{Kind: KindTransient, Page: 3, Err: cause}

	assert.Contains(t, err.Error(), "page 3")
	assert.True(t, errors.Is(err, cause))
}
