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
	"testing"

	"github.com/google/gopacket"
)

func TestAnnounceRoundTrip(t *testing.T) {
	a := &AnnounceLayer{
		Magic:       AnnounceMagic,
		ApiPort:     8005,
		NumChannels: 4,
		Seq:         123,
		UptimeMS:    456789,
		Name:        "lab-sampler",
	}

	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, a); err != nil {
		t.Fatalf("SerializeLayers failed: %v", err)
	}

	packet := gopacket.NewPacket(buf.Bytes(), AnnounceLayerType, gopacket.Default)
	layer := packet.Layer(AnnounceLayerType)
	if layer == nil {
		t.Fatalf("Announce layer not decoded: %v", packet.ErrorLayer())
	}
	decoded := layer.(*AnnounceLayer)

	if decoded.ApiPort != 8005 || decoded.NumChannels != 4 || decoded.Seq != 123 ||
		decoded.UptimeMS != 456789 || decoded.Name != "lab-sampler" {
		t.Errorf("Decoded layer does not match: %+v", decoded)
	}
}

func TestAnnounceRejectsBadMagic(t *testing.T) {
	a := &AnnounceLayer{Magic: 0xdeadbeef, Name: "x"}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, a); err != nil {
		t.Fatalf("SerializeLayers failed: %v", err)
	}

	decoded := &AnnounceLayer{}
	if err := decoded.DecodeFromBytes(buf.Bytes(), gopacket.NilDecodeFeedback); err == nil {
		t.Fatal("Expected error for wrong magic")
	}
}

func TestAnnounceRejectsTruncated(t *testing.T) {
	decoded := &AnnounceLayer{}
	if err := decoded.DecodeFromBytes([]byte{1, 2, 3}, gopacket.NilDecodeFeedback); err == nil {
		t.Fatal("Expected error for truncated datagram")
	}
}
