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

package sampler

import (
	"fmt"

	"jinr.ru/greenlab/go-sampler/pkg/config"
)

// ErrNotInjectable returned when injection is requested from a source that does not support it
type ErrNotInjectable struct {
	Backend string
}

func (e ErrNotInjectable) Error() string {
	return fmt.Sprintf("Backend %q does not support injection. Only %s does", e.Backend, config.BackendSim)
}

// ErrSnapshotNotFound returned when the state database has no mirrored snapshot yet
type ErrSnapshotNotFound struct{}

func (e ErrSnapshotNotFound) Error() string {
	return "No snapshot mirrored yet"
}
