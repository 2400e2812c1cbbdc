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

package inject

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-sampler/pkg/command"
	"jinr.ru/greenlab/go-sampler/pkg/config"
)

func NewCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "inject <channel> <millivolts>",
		Short: "Inject a channel value (sim backend only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			mv, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return err
			}
			apiClient := command.NewApiClient(cfg)
			result, err := apiClient.Inject(channel, int32(mv))
			if err != nil {
				return err
			}
			if result.Clamped {
				fmt.Printf("Value out of range, clamped: ch[%d] = %d mV\n", result.Channel, result.MV)
			} else {
				fmt.Printf("Set ch[%d] = %d mV\n", result.Channel, result.MV)
			}
			fmt.Println("Next sampling round will reflect this value.")
			return nil
		},
	}
	return cmd
}
