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

package layers

import (
	"fmt"
)

// ErrAnnounceTooShort returned when an announce datagram is truncated
type ErrAnnounceTooShort struct {
	Length int
}

func (e ErrAnnounceTooShort) Error() string {
	return fmt.Sprintf("Announce datagram too short: %d bytes", e.Length)
}

// ErrAnnounceBadMagic returned when a datagram does not carry the announce magic
type ErrAnnounceBadMagic struct {
	Magic uint32
}

func (e ErrAnnounceBadMagic) Error() string {
	return fmt.Sprintf("Wrong announce magic: 0x%08x", e.Magic)
}
