/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultNumChannels, cfg.NumChannels)
	assert.Equal(t, DefaultSamplePeriodMS, cfg.SamplePeriodMS)
	assert.Equal(t, int32(DefaultReferenceMV), cfg.ReferenceMV)
	assert.Equal(t, BackendSim, cfg.Backend)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero channels", func(c *Config) { c.NumChannels = 0 }},
		{"negative channels", func(c *Config) { c.NumChannels = -1 }},
		{"zero period", func(c *Config) { c.SamplePeriodMS = 0 }},
		{"zero reference", func(c *Config) { c.ReferenceMV = 0 }},
		{"unknown backend", func(c *Config) { c.Backend = "i2c" }},
		{"missing sampler section", func(c *Config) { c.SamplerConfig = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.IsType(t, ErrInvalidConfig{}, err)
		})
	}
}

func TestPersistLoadRoundTrip(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.filepath = filepath.Join(t.TempDir(), "config")
	cfg.NumChannels = 6
	cfg.Backend = BackendSPI
	require.NoError(t, cfg.Persist(false))

	loaded := NewDefaultConfig()
	loaded.filepath = cfg.filepath
	require.NoError(t, loaded.Load())
	assert.Equal(t, 6, loaded.NumChannels)
	assert.Equal(t, BackendSPI, loaded.Backend)
}

func TestPersistRefusesToOverwrite(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.filepath = filepath.Join(t.TempDir(), "config")
	require.NoError(t, cfg.Persist(false))

	err := cfg.Persist(false)
	require.Error(t, err)
	assert.IsType(t, ErrConfigFileExists{}, err)

	require.NoError(t, cfg.Persist(true))
}
