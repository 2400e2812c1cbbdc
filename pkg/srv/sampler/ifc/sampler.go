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

package ifc

import (
	"jinr.ru/greenlab/go-sampler/pkg/regfile"
)

type SamplerServer interface {
	Run() error

	// Snapshot returns a consistent copy of the register file
	Snapshot() regfile.Snapshot
	// Inject forces the channel source to report mv for a channel on the
	// next round; returns the applied value after clamping
	Inject(channel int, mv int32) (int32, error)
	NumChannels() int
}

type ApiServer interface {
	Run() error
}
