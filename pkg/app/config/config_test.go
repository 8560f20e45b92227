package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := NewConfig()

	assert.Equal(t, "/dev/hidraw0", c.Device)
	assert.Equal(t, 600, c.IntervalInt)
	assert.True(t, c.Webserver.Webservices["health"])
}

func TestLoadConfig(t *testing.T) {
	yml := `device: auto
interval: 60
datafile: /var/log/co2mon.csv
mqtt:
  connection: tcp://127.0.0.1:1883
  topic: home/office/co2
metrics:
  url: ":9100"
`

	file := filepath.Join(t.TempDir(), "co2mon.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte(yml), 0o666))

	c := NewConfig()
	c.Flag.ConfigFile = file
	require.NoError(t, c.LoadConfig())

	assert.Equal(t, "auto", c.Device)
	assert.Equal(t, time.Minute, c.Interval)
	assert.Equal(t, "/var/log/co2mon.csv", c.DataFile)
	assert.Equal(t, "tcp://127.0.0.1:1883", c.MQTT.Connection)
	assert.Equal(t, "home/office/co2", c.MQTT.Topic)
	assert.Equal(t, ":9100", c.Metrics.URL)

	// defaults survive a partial config file
	assert.Equal(t, "http://0.0.0.0:4000", c.Webserver.URL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	c := NewConfig()
	c.Flag.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")

	assert.Error(t, c.LoadConfig())
}
