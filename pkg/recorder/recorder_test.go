package recorder

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVAppendRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "co2.csv")
	c := NewCSV(path, []string{"Time", "CO2(ppm)"})

	require.NoError(t, c.AppendRow([]string{"2025-08-01 12:00:00", "404"}))
	require.NoError(t, c.AppendRow([]string{"2025-08-01 12:10:00", "412"}))

	b, err := ioutil.ReadFile(path)
	require.NoError(t, err)

	// the header row is written exactly once
	assert.Equal(t,
		"Time,CO2(ppm)\n"+
			"2025-08-01 12:00:00,404\n"+
			"2025-08-01 12:10:00,412\n",
		string(b))
}

func TestCSVWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "co2.csv")
	c := NewCSV(path, nil)

	require.NoError(t, c.AppendRow([]string{"2025-08-01 12:00:00", "404"}))

	b, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-01 12:00:00,404\n", string(b))
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard{}.AppendRow([]string{"dropped"}))
}
