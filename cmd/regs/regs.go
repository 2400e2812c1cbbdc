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

package regs

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-sampler/pkg/command"
	"jinr.ru/greenlab/go-sampler/pkg/config"
)

func NewCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "regs",
		Short: "Print the register file contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			snapshot, err := apiClient.RegsRead()
			if err != nil {
				return err
			}
			fmt.Println("Register file:")
			fmt.Printf("  seq:       %d\n", snapshot.Seq)
			fmt.Printf("  timestamp: %d ms\n", snapshot.LastUpdateMS)
			fmt.Println("  channels:")
			for i, mv := range snapshot.ChannelValues {
				fmt.Printf("    ch[%d]: %d mV\n", i, mv)
			}
			return nil
		},
	}
	return cmd
}
