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

package serve

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-sampler/pkg/command"
	"jinr.ru/greenlab/go-sampler/pkg/config"
)

const (
	IPOptionName       = "ip"
	ChannelsOptionName = "channels"
	PeriodOptionName   = "period-ms"
	BackendOptionName  = "backend"
	SPIPortOptionName  = "spi-port"
)

func NewCommand() *cobra.Command {
	var ip, backend, spiPort string
	var channels, periodMS int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sampling daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ip != "" {
				cfg.IP = ip
			}
			if channels != 0 {
				cfg.NumChannels = channels
			}
			if periodMS != 0 {
				cfg.SamplePeriodMS = periodMS
			}
			if backend != "" {
				cfg.Backend = backend
			}
			if spiPort != "" {
				cfg.SPIPort = spiPort
			}
			return command.StartSamplerServer(cfg)
		},
	}
	cmd.Flags().StringVar(&ip, IPOptionName, "", fmt.Sprintf("IP to bind. E.g. %s", config.DefaultIP))
	cmd.Flags().IntVar(&channels, ChannelsOptionName, 0, "Number of analog channels")
	cmd.Flags().IntVar(&periodMS, PeriodOptionName, 0, "Sampling period in milliseconds")
	cmd.Flags().StringVar(&backend, BackendOptionName, "", fmt.Sprintf("Channel source backend. %s", config.HelpBackends))
	cmd.Flags().StringVar(&spiPort, SPIPortOptionName, "", "SPI port name for the spi backend")

	return cmd
}
