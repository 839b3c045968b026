package lgtm

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	// requestTimeout bounds a single attempt, not the whole retry loop.
	requestTimeout = 30 * time.Second

	// maxRetries is the number of extra attempts after the first one, so
	// a request that keeps failing in the TLS layer is tried five times.
	maxRetries = 4
)

// tlsErrorRe matches TLS and certificate failures that the transport
// reports as plain strings rather than typed errors.
var tlsErrorRe = regexp.MustCompile(`\btls:|\bx509:`)

// newRetryClient builds the HTTP client every site request goes through:
// up to four additional attempts, applied only to TLS-layer failures.
// That failure class clears on reconnect, so there is no backoff between
// attempts.
func newRetryClient(rt http.RoundTripper) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient = &http.Client{
		Transport: rt,
		Timeout:   requestTimeout,
	}
	client.RetryMax = maxRetries
	client.Backoff = immediateBackoff
	client.CheckRetry = retryPolicy
	client.ErrorHandler = giveUp
	return client
}

func immediateBackoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	return 0
}

// retryPolicy retries TLS-layer failures only. Responses are never
// retried, whatever their status code.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return isTLSError(err), nil
	}
	return false, nil
}

// giveUp shapes the terminal error once attempts run out. Only the
// retried class is wrapped; anything else surfaces exactly as the
// transport reported it.
func giveUp(resp *http.Response, err error, numTries int) (*http.Response, error) {
	if isTLSError(err) {
		return resp, &RequestError{Err: fmt.Errorf("TLS failure after %d attempts: %w", numTries, err)}
	}
	return resp, err
}

// isTLSError reports whether err is a TLS-layer failure: a bad record, a
// failed handshake, or certificate verification trouble.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		return true
	}
	var authErr x509.UnknownAuthorityError
	if errors.As(err, &authErr) {
		return true
	}
	var hostErr x509.HostnameError
	if errors.As(err, &hostErr) {
		return true
	}
	var invalidErr x509.CertificateInvalidError
	if errors.As(err, &invalidErr) {
		return true
	}

	return tlsErrorRe.MatchString(err.Error())
}
