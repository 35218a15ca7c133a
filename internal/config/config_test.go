// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0644))
	return p
}

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, logicsim.DefaultStepLimit, c.StepLimit)
	assert.Len(t, c.Options(), 2)
}

func TestLoad(t *testing.T) {
	want := &config.Config{
		StepLimit: 500,
		Strict:    true,
		Log:       config.Log{Level: "debug", Format: "json"},
		Metrics:   config.Metrics{Addr: ":9090"},
		Waveform:  config.Waveform{Dir: "waves", Watch: []string{"clk", "q"}},
	}
	files := map[string]string{
		"logicsim.yaml": `
step_limit: 500
strict: true
log:
  level: debug
  format: json
metrics:
  addr: ":9090"
waveform:
  dir: waves
  watch: [clk, q]
`,
		"logicsim.toml": `
step_limit = 500
strict = true

[log]
level = "debug"
format = "json"

[metrics]
addr = ":9090"

[waveform]
dir = "waves"
watch = ["clk", "q"]
`,
	}
	for name, data := range files {
		c, err := config.Load(write(t, name, data))
		require.NoError(t, err, name)
		if diff := cmp.Diff(want, c); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", name, diff)
		}
	}
}

func TestLoad_partial(t *testing.T) {
	c, err := config.Load(write(t, "c.yml", "strict: true\n"))
	require.NoError(t, err)
	assert.True(t, c.Strict)
	assert.Equal(t, logicsim.DefaultStepLimit, c.StepLimit)
	assert.Equal(t, "warn", c.Log.Level)

	c, err = config.Load(write(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestLoad_errors(t *testing.T) {
	td := []struct {
		name, data string
	}{
		{"limit.yaml", "step_limit: 0\n"},
		{"level.yaml", "log:\n  level: loud\n"},
		{"format.yaml", "log:\n  format: xml\n"},
		{"watch.yaml", "waveform:\n  watch: [a, '']\n"},
		{"unknown.yaml", "colour: red\n"},
		{"syntax.yaml", "step_limit: [\n"},
		{"syntax.toml", "step_limit = \n"},
	}
	for _, d := range td {
		_, err := config.Load(write(t, d.name, d.data))
		assert.Error(t, err, d.name)
	}
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
