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

// Package spi provides a channel source reading an MCP3008-class 10-bit
// ADC over SPI.
package spi

import (
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"jinr.ru/greenlab/go-sampler/pkg/log"
	"jinr.ru/greenlab/go-sampler/pkg/source/ifc"
)

const (
	// MaxChannels is the number of inputs on an MCP3008
	MaxChannels = 8
	// Resolution in bits
	Resolution = 10
	maxCount   = (1 << Resolution) - 1
)

type Source struct {
	numChannels int
	referenceMV int32
	portName    string
	port        spi.PortCloser
	conn        spi.Conn
}

var _ ifc.Source = &Source{}

func NewSource(numChannels int, referenceMV int32, portName string) *Source {
	return &Source{
		numChannels: numChannels,
		referenceMV: referenceMV,
		portName:    portName,
	}
}

// Init brings up the host SPI subsystem and connects to the converter.
// Per the MCP3008 datasheet the bus is limited to 1 MHz.
func (s *Source) Init() error {
	if s.numChannels > MaxChannels {
		return ErrTooManyChannels{NumChannels: s.numChannels}
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	port, err := spireg.Open(s.portName)
	if err != nil {
		return err
	}
	if err := port.LimitSpeed(1 * physic.MegaHertz); err != nil {
		port.Close()
		return err
	}
	conn, err := port.Connect(1*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return err
	}
	s.port = port
	s.conn = conn
	log.Info("SPI source initialized: port: %q channels: %d reference: %d mV", s.portName, s.numChannels, s.referenceMV)
	return nil
}

func (s *Source) SampleAll() ([]int32, error) {
	mv := make([]int32, s.numChannels)
	for ch := 0; ch < s.numChannels; ch++ {
		raw, err := s.readChannel(ch)
		if err != nil {
			return nil, err
		}
		mv[ch] = int32(int64(raw) * int64(s.referenceMV) / maxCount)
	}
	return mv, nil
}

// readChannel performs a single-ended conversion of one input.
func (s *Source) readChannel(channel int) (int, error) {
	tx := []byte{1, byte((8 + channel) << 4), 0}
	rx := make([]byte, 3)
	if err := s.conn.Tx(tx, rx); err != nil {
		return 0, err
	}
	return (int(rx[1])<<8 | int(rx[2])) & maxCount, nil
}

func (s *Source) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
