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

// Source yields one millivolt reading per configured channel.
type Source interface {
	// Init performs one-time setup. An error means the backend is not
	// ready and is fatal for startup.
	Init() error
	// SampleAll reads every channel in one round. Partial results are
	// never returned, an error fails the whole round.
	SampleAll() ([]int32, error)
}

// Injector is implemented by sources that can be forced to report a given
// value on the next sampling round. Simulation only.
type Injector interface {
	// Inject sets the value reported for a channel and returns the value
	// actually applied after clamping to the plausible voltage range.
	Inject(channel int, mv int32) (int32, error)
}
