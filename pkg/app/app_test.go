package app

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"co2mon/pkg/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/womat/debug"
)

func TestMain(m *testing.M) {
	debug.SetDebug(os.Stderr, debug.Standard)
	os.Exit(m.Run())
}

// newTestApp wires an app with default config and routes but without a
// sensor or broker.
func newTestApp(t *testing.T) *App {
	a, err := New(config.NewConfig())
	require.NoError(t, err)

	a.initDefaultRoutes()
	return a
}

func TestHandleVersion(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.web.Test(httptest.NewRequest("GET", "/version", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, VERSION, body["version"])
	assert.Equal(t, MODULE, body["description"])
}

func TestHandleHealth(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.web.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, VERSION, body["Version"])
	assert.NotEmpty(t, body["Device"])
}

func TestHandleDataWithoutSensor(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.web.Test(httptest.NewRequest("GET", "/data", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, MODULE+" V1.0.0", Version())
}
