// Package loghttp dumps HTTP traffic to stderr for debugging sessions
// against undocumented APIs.
package loghttp

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
)

// Transport wraps an HTTP transport and logs requests/responses
type Transport struct {
	Next http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqDump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		return nil, fmt.Errorf("failed to dump request: %w", err)
	}
	fmt.Fprintf(os.Stderr, ">>> Request:\n%s\n", string(reqDump))

	resp, err := t.next().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	respDump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to dump response: %w", err)
	}
	fmt.Fprintf(os.Stderr, "<<< Response:\n%s\n", string(respDump))

	return resp, nil
}

func (t *Transport) next() http.RoundTripper {
	if t.Next == nil {
		return http.DefaultTransport
	}
	return t.Next
}
