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
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// AnnounceLayerNum identifies the layer
	AnnounceLayerNum = 2041
	// AnnounceMagic marks announce datagrams, "SMPL" in ASCII
	AnnounceMagic uint32 = 0x534d504c
	// AnnounceHeaderLength is the fixed part before the name bytes
	AnnounceHeaderLength = 21
)

// AnnounceLayer carries the identity and latest state generation of a
// running sampler. It is multicast periodically so that samplers on the
// local network can be discovered without configuration.
type AnnounceLayer struct {
	layers.BaseLayer
	Magic       uint32
	ApiPort     uint16
	NumChannels uint16
	Seq         uint32
	UptimeMS    uint64
	Name        string
}

var AnnounceLayerType = gopacket.RegisterLayerType(AnnounceLayerNum,
	gopacket.LayerTypeMetadata{Name: "AnnounceLayerType", Decoder: gopacket.DecodeFunc(DecodeAnnounceLayer)})

// LayerType returns the type of the announce layer in the layer catalog
func (a *AnnounceLayer) LayerType() gopacket.LayerType {
	return AnnounceLayerType
}

func (a *AnnounceLayer) Length() int {
	return AnnounceHeaderLength + len(a.Name)
}

// Serialize serializes the announce layer to a buffer which must be at
// least Length() bytes long.
func (a *AnnounceLayer) Serialize(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], a.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], a.ApiPort)
	binary.LittleEndian.PutUint16(buf[6:8], a.NumChannels)
	binary.LittleEndian.PutUint32(buf[8:12], a.Seq)
	binary.LittleEndian.PutUint64(buf[12:20], a.UptimeMS)
	buf[20] = byte(len(a.Name))
	copy(buf[AnnounceHeaderLength:], a.Name)
}

// SerializeTo serializes the announce layer into bytes and writes the bytes to the SerializeBuffer
func (a *AnnounceLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.AppendBytes(a.Length())
	if err != nil {
		return err
	}
	a.Serialize(bytes)
	return nil
}

func (a *AnnounceLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < AnnounceHeaderLength {
		df.SetTruncated()
		return ErrAnnounceTooShort{Length: len(data)}
	}
	a.Magic = binary.LittleEndian.Uint32(data[0:4])
	if a.Magic != AnnounceMagic {
		return ErrAnnounceBadMagic{Magic: a.Magic}
	}
	a.ApiPort = binary.LittleEndian.Uint16(data[4:6])
	a.NumChannels = binary.LittleEndian.Uint16(data[6:8])
	a.Seq = binary.LittleEndian.Uint32(data[8:12])
	a.UptimeMS = binary.LittleEndian.Uint64(data[12:20])
	nameLen := int(data[20])
	if len(data) < AnnounceHeaderLength+nameLen {
		df.SetTruncated()
		return ErrAnnounceTooShort{Length: len(data)}
	}
	a.Name = string(data[AnnounceHeaderLength : AnnounceHeaderLength+nameLen])
	a.BaseLayer = layers.BaseLayer{
		Contents: data[:AnnounceHeaderLength+nameLen],
		Payload:  []byte{},
	}
	return nil
}

func (a *AnnounceLayer) String() string {
	return fmt.Sprintf("Sampler: %s\n  apiPort:  %d\n  channels: %d\n  seq:      %d\n  uptime:   %d ms\n",
		a.Name, a.ApiPort, a.NumChannels, a.Seq, a.UptimeMS)
}

func DecodeAnnounceLayer(data []byte, p gopacket.PacketBuilder) error {
	a := &AnnounceLayer{}
	err := a.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(a)
	return nil
}
