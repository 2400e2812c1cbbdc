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

const (
	ConfigDir  = ".go-sampler"
	ConfigFile = "config"
	StateFile  = "state.db"

	BackendSim = "sim"
	BackendSPI = "spi"
	HelpBackends = "Must be one of: sim, spi."

	DefaultName           = "go-sampler"
	DefaultIP             = "0.0.0.0"
	DefaultLogLevel       = "info"
	DefaultNumChannels    = 4
	DefaultSamplePeriodMS = 100
	DefaultReferenceMV    = 3300
	DefaultBackend        = BackendSim
	// Empty means the first available SPI port
	DefaultSPIPort = ""

	DefaultAnnounceAddress = "239.192.1.1"
	DefaultAnnouncePort    = "33306"
)
