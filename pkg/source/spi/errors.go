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

package spi

import (
	"fmt"
)

// ErrTooManyChannels returned when the configured channel count exceeds the converter inputs
type ErrTooManyChannels struct {
	NumChannels int
}

func (e ErrTooManyChannels) Error() string {
	return fmt.Sprintf("Too many channels for SPI backend: %d. Converter has %d inputs", e.NumChannels, MaxChannels)
}
