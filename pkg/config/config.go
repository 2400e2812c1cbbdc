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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SamplerConfig struct {
	NumChannels    int    `yaml:"numChannels"`
	SamplePeriodMS int    `yaml:"samplePeriodMs"`
	ReferenceMV    int32  `yaml:"referenceMv"`
	Backend        string `yaml:"backend"`
	SPIPort        string `yaml:"spiPort,omitempty"`
}

type AnnounceConfig struct {
	Address   string `yaml:"address,omitempty"`
	Port      string `yaml:"port,omitempty"`
	Interface string `yaml:"interface,omitempty"`
}

type Config struct {
	Name            string `yaml:"name"`
	IP              string `yaml:"ip"`
	LogLevel        string `yaml:"logLevel"`
	DBPath          string `yaml:"dbPath,omitempty"`
	*SamplerConfig  `yaml:"sampler"`
	*AnnounceConfig `yaml:"announce,omitempty"`
	filepath        string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

func (c *Config) Load() error {
	data, err := ioutil.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks the parts of the config that fix the shape of the register
// file and the sampling loop. It must pass before the server is constructed.
func (c *Config) Validate() error {
	if c.SamplerConfig == nil {
		return ErrInvalidConfig{What: "sampler section is missing"}
	}
	if c.NumChannels <= 0 {
		return ErrInvalidConfig{What: fmt.Sprintf("numChannels must be positive, got %d", c.NumChannels)}
	}
	if c.SamplePeriodMS <= 0 {
		return ErrInvalidConfig{What: fmt.Sprintf("samplePeriodMs must be positive, got %d", c.SamplePeriodMS)}
	}
	if c.ReferenceMV <= 0 {
		return ErrInvalidConfig{What: fmt.Sprintf("referenceMv must be positive, got %d", c.ReferenceMV)}
	}
	switch c.Backend {
	case BackendSim:
	case BackendSPI:
	default:
		return ErrInvalidConfig{What: fmt.Sprintf("unknown backend %q. %s", c.Backend, HelpBackends)}
	}
	return nil
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, StateFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		Name:     DefaultName,
		IP:       DefaultIP,
		LogLevel: DefaultLogLevel,
		DBPath:   DefaultDBPath(),
		SamplerConfig: &SamplerConfig{
			NumChannels:    DefaultNumChannels,
			SamplePeriodMS: DefaultSamplePeriodMS,
			ReferenceMV:    DefaultReferenceMV,
			Backend:        DefaultBackend,
			SPIPort:        DefaultSPIPort,
		},
		AnnounceConfig: &AnnounceConfig{
			Address: DefaultAnnounceAddress,
			Port:    DefaultAnnouncePort,
		},
		filepath: DefaultConfigPath(),
	}
}
