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

// Package discover listens on the announce multicast group and prints
// samplers as they announce themselves.
package discover

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-sampler/pkg/config"
	samplerlayers "jinr.ru/greenlab/go-sampler/pkg/layers"
	"jinr.ru/greenlab/go-sampler/pkg/log"
)

type Captured struct {
	Data []byte
	gopacket.CaptureInfo
}

type Server struct {
	context.Context
	*config.AnnounceConfig
	*net.Interface
	*net.UDPAddr
	chCaptured chan Captured
}

func NewServer(ctx context.Context, cfg *config.AnnounceConfig) (*Server, error) {
	log.Debug("Initializing discover server with address: %s port: %s iface: %s",
		cfg.Address, cfg.Port, cfg.Interface)

	var iface *net.Interface
	if cfg.Interface != "" {
		i, err := net.InterfaceByName(cfg.Interface)
		if err != nil {
			return nil, err
		}
		iface = i
	}
	uaddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%s", cfg.Address, cfg.Port))
	if err != nil {
		return nil, err
	}

	s := &Server{
		Context:        ctx,
		AnnounceConfig: cfg,
		Interface:      iface,
		UDPAddr:        uaddr,
		chCaptured:     make(chan Captured),
	}
	return s, nil
}

// ReadPacketData reads the chCaptured channel and returns packet data and
// metadata. This method is from the PacketDataSource interface.
func (s *Server) ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error) {
	captured := <-s.chCaptured
	data = captured.Data
	ci = captured.CaptureInfo
	return
}

func (s *Server) Run() error {
	conn, err := net.ListenMulticastUDP("udp", s.Interface, s.UDPAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	errChan := make(chan error, 1)
	buffer := make([]byte, 2048)

	// Read announce datagrams from the chCaptured channel, decode and print them
	go func() {
		source := gopacket.NewPacketSource(s, samplerlayers.AnnounceLayerType)
		for packet := range source.Packets() {
			layer := packet.Layer(samplerlayers.AnnounceLayerType)
			if layer == nil {
				log.Debug("Drop datagram. Not an announce datagram")
				continue
			}
			al, ok := layer.(*samplerlayers.AnnounceLayer)
			if !ok {
				log.Error("Error while asserting to AnnounceLayer")
				continue
			}
			fmt.Print(al.String())
		}
	}()

	// Capture datagrams from the wire and put them into the chCaptured channel
	go func() {
		for {
			length, addr, captureErr := conn.ReadFrom(buffer)
			if captureErr != nil {
				errChan <- captureErr
				return
			}
			log.Debug("Received announce datagram from %s", addr)
			data := make([]byte, length)
			copy(data, buffer[:length])
			s.chCaptured <- Captured{
				Data: data,
				CaptureInfo: gopacket.CaptureInfo{
					Length:        length,
					CaptureLength: length,
					Timestamp:     time.Now(),
				},
			}
		}
	}()

	select {
	case <-s.Context.Done():
		return s.Context.Err()
	case err = <-errChan:
		return err
	}
}
