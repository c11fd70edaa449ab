package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Settings(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(7 * time.Second)

	assert.Equal(t, 7*time.Second, c.Timeout)
	require.NotNil(t, c.Jar)
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, maxIdleConnsPerHost, tr.MaxIdleConnsPerHost)
	assert.Equal(t, tlsHandshakeTimeout, tr.TLSHandshakeTimeout)
}

func TestNewHTTPClient_KeepsCookies(t *testing.T) {
	t.Parallel()

	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/consent" {
			http.SetCookie(w, &http.Cookie{Name: "A1", Value: "token", Path: "/"})
			return
		}
		if ck, err := r.Cookie("A1"); err == nil {
			gotCookie = ck.Value
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(2 * time.Second)
	res, err := c.Get(srv.URL + "/consent")
	require.NoError(t, err)
	_ = res.Body.Close()
	res, err = c.Get(srv.URL + "/v8/finance/chart/THYAO.IS")
	require.NoError(t, err)
	_ = res.Body.Close()

	assert.Equal(t, "token", gotCookie)
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewHTTPClient(20 * time.Millisecond)
	_, err := c.Get(srv.URL)
	assert.Error(t, err)
}
