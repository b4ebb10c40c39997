package gainservice

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/surround-panner/internal/gain"
	"github.com/iburimskiy/surround-panner/internal/geometry"
)

func fixedRand(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i%len(vals)]
		i++
		return v
	}
}

func serve(t *testing.T, req *http.Request, opts ...Option) *httptest.ResponseRecorder {
	t.Helper()
	s := New("http://localhost:5173", zerolog.Nop(), opts...)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGains_EchoesQuery(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/api?x=-0.25&y=0.75", nil),
		WithRand(fixedRand(0.1, 0.2, 0.3, 0.4, 0.5)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp, err := gain.DecodeResponse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, gain.Response{L: 0.1, R: 0.2, C: 0.3, LS: 0.4, RS: 0.5, Echo: &gain.Echo{X: -0.25, Y: 0.75}}, resp)
}

func TestGains_DefaultRandInUnitRange(t *testing.T) {
	for i := 0; i < 20; i++ {
		rec := serve(t, httptest.NewRequest(http.MethodGet, "/api?x=0&y=0", nil))
		resp, err := gain.DecodeResponse(rec.Body.Bytes())
		require.NoError(t, err)
		for _, g := range resp.Gains() {
			assert.GreaterOrEqual(t, g.Gain, 0.0)
			assert.Less(t, g.Gain, 1.0)
		}
	}
}

func TestGains_BadParameters(t *testing.T) {
	for _, target := range []string{"/api", "/api?x=1", "/api?y=1", "/api?x=abc&y=1", "/api?x=1&y=NaN", "/api?x=Inf&y=0"} {
		t.Run(target, func(t *testing.T) {
			rec := serve(t, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestGains_MethodNotAllowed(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodPost, "/api?x=0&y=0", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS_AllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api?x=0&y=0", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := serve(t, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_OtherOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api?x=0&y=0", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := serve(t, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_Wildcard(t *testing.T) {
	s := New("*", zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := serve(t, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestClientAgainstService(t *testing.T) {
	s := New("*", zerolog.Nop())
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	c := gain.NewClient(server.URL, time.Second, zerolog.Nop())
	resp, err := c.QueryPosition(context.Background(), geometry.Position{X: 300, Y: 100}, geometry.Canvas{Radius: 200})
	require.NoError(t, err)
	require.NotNil(t, resp.Echo)
	assert.Equal(t, gain.Echo{X: 0.5, Y: 0.5}, *resp.Echo)

	res, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
