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

// Package announce periodically multicasts the sampler's identity and the
// latest committed sequence so running samplers can be discovered on the
// local network.
package announce

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-sampler/pkg/config"
	"jinr.ru/greenlab/go-sampler/pkg/layers"
	"jinr.ru/greenlab/go-sampler/pkg/log"
	"jinr.ru/greenlab/go-sampler/pkg/regfile"
	"jinr.ru/greenlab/go-sampler/pkg/srv"
)

const (
	AnnouncePeriod = time.Second
)

type Announcer struct {
	srv.Server
	regs  *regfile.RegFile
	uaddr *net.UDPAddr
}

func NewAnnouncer(ctx context.Context, cfg *config.Config, regs *regfile.RegFile) (*Announcer, error) {
	log.Debug("Initializing announcer with address: %s port: %s",
		cfg.AnnounceConfig.Address, cfg.AnnounceConfig.Port)

	uaddr, err := net.ResolveUDPAddr("udp",
		fmt.Sprintf("%s:%s", cfg.AnnounceConfig.Address, cfg.AnnounceConfig.Port))
	if err != nil {
		return nil, err
	}

	return &Announcer{
		Server: srv.Server{
			Context: ctx,
			Config:  cfg,
		},
		regs:  regs,
		uaddr: uaddr,
	}, nil
}

func (a *Announcer) Run() error {
	conn, err := net.DialUDP("udp", nil, a.uaddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info("Announcer started: group: %s", a.uaddr)

	ticker := time.NewTicker(AnnouncePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-a.Context.Done():
			return a.Context.Err()
		case <-ticker.C:
			if err := a.announce(conn); err != nil {
				log.Error("Error while sending announce datagram to %s: %s", a.uaddr, err)
			}
		}
	}
}

func (a *Announcer) announce(conn *net.UDPConn) error {
	snapshot := a.regs.Read()
	al := &layers.AnnounceLayer{
		Magic:       layers.AnnounceMagic,
		ApiPort:     srv.ApiPort,
		NumChannels: uint16(len(snapshot.ChannelValues)),
		Seq:         snapshot.Seq,
		UptimeMS:    uint64(regfile.UptimeMillis()),
		Name:        a.Config.Name,
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{}
	if err := gopacket.SerializeLayers(buf, opts, al); err != nil {
		return err
	}

	_, err := conn.Write(buf.Bytes())
	return err
}
