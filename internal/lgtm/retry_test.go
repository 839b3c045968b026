package lgtm

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const myProjectsURL = "https://lgtm.com/internal_api/v0.2/getMyProjects"

func TestRetriesTLSFailureUpToFiveAttempts(t *testing.T) {
	site := testSite(t)

	attempts := 0
	httpmock.RegisterResponder("GET", myProjectsURL,
		func(req *http.Request) (*http.Response, error) {
			attempts++
			return nil, tls.RecordHeaderError{Msg: "first record does not look like a TLS handshake"}
		})

	_, err := site.MyProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, 5, attempts)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)

	// The original cause stays reachable through the wrap.
	var recordErr tls.RecordHeaderError
	assert.ErrorAs(t, err, &recordErr)
}

func TestRetryStopsOnSuccess(t *testing.T) {
	site := testSite(t)

	attempts := 0
	httpmock.RegisterResponder("GET", myProjectsURL,
		func(req *http.Request) (*http.Response, error) {
			attempts++
			if attempts < 3 {
				return nil, tls.RecordHeaderError{Msg: "handshake failure"}
			}
			return httpmock.NewStringResponse(200, `{"status": "success", "data": []}`), nil
		})

	projects, err := site.MyProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.Equal(t, 3, attempts)
}

func TestNonTLSErrorNotRetried(t *testing.T) {
	site := testSite(t)

	attempts := 0
	httpmock.RegisterResponder("GET", myProjectsURL,
		func(req *http.Request) (*http.Response, error) {
			attempts++
			return nil, errors.New("connection refused")
		})

	_, err := site.MyProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	// Non-TLS transport errors surface as the transport reported them.
	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr))
}

func TestServerErrorResponseNotRetried(t *testing.T) {
	site := testSite(t)

	attempts := 0
	httpmock.RegisterResponder("GET", myProjectsURL,
		func(req *http.Request) (*http.Response, error) {
			attempts++
			return httpmock.NewStringResponse(500, "Internal Server Error"), nil
		})

	_, err := site.MyProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Body, "Internal Server Error")
}

func TestIsTLSError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "record header error",
			err:  tls.RecordHeaderError{Msg: "bad record"},
			want: true,
		},
		{
			name: "record header error inside url.Error",
			err:  &url.Error{Op: "Get", URL: "https://lgtm.com", Err: tls.RecordHeaderError{Msg: "bad record"}},
			want: true,
		},
		{
			name: "unknown authority",
			err:  x509.UnknownAuthorityError{},
			want: true,
		},
		{
			name: "hostname mismatch",
			err:  x509.HostnameError{Certificate: &x509.Certificate{}, Host: "lgtm.com"},
			want: true,
		},
		{
			name: "untyped handshake failure",
			err:  errors.New("remote error: tls: handshake failure"),
			want: true,
		},
		{
			name: "untyped certificate failure",
			err:  errors.New("x509: certificate signed by unknown authority"),
			want: true,
		},
		{
			name: "plain network error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTLSError(tt.err))
		})
	}
}
