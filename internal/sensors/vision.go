// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/line_picker/internal/control"
)

// The block camera streams 16-bit little-endian words over UART. Each block
// is: sync (0xaa55), checksum, signature, x, y, width, height; the checksum
// is the 16-bit sum of the five payload words. A frame starts with two
// consecutive sync words, and the camera sends nothing at all while it sees
// no blocks.
const syncWord = 0xaa55

// frameStale is how long the last frame stays valid. The camera streams at
// 50 fps while it sees something, so anything older than a few frame
// periods means the blocks are gone.
const frameStale = 100 * time.Millisecond

// BlockCam reads block detections from the vision module. A background
// goroutine keeps the latest frame; ReadTargets never blocks the control
// loop.
type BlockCam struct {
	port io.ReadWriteCloser

	mu     sync.Mutex
	blocks []control.Block
	seen   time.Time
}

// NewBlockCam opens the camera's serial port and starts the reader.
func NewBlockCam(device string, baud uint) (*BlockCam, error) {
	opts := serial.OpenOptions{
		PortName:        device,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("vision serial port %s: %w", device, err)
	}
	log.Printf("vision: serial port opened on %s at %d baud", device, baud)

	c := &BlockCam{port: port}
	go c.readLoop()
	return c, nil
}

// ReadTargets returns the most recent frame's blocks, or an empty slice if
// the camera has gone quiet (no blocks in view).
func (c *BlockCam) ReadTargets() ([]control.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.seen) > frameStale {
		return nil, nil
	}
	out := make([]control.Block, len(c.blocks))
	copy(out, c.blocks)
	return out, nil
}

// Close stops the reader by closing the port.
func (c *BlockCam) Close() error {
	return c.port.Close()
}

func (c *BlockCam) readLoop() {
	sc := newBlockScanner(c.port)
	for {
		blocks, err := sc.nextFrame()
		if err != nil {
			// Port closed or unrecoverable read error; the last frame goes
			// stale on its own and the tracker falls back to searching.
			log.Printf("vision: read loop stopped: %v", err)
			return
		}
		c.mu.Lock()
		c.blocks = blocks
		c.seen = time.Now()
		c.mu.Unlock()
	}
}

// blockScanner decodes the camera's word stream into frames of blocks.
type blockScanner struct {
	r *bufio.Reader

	pend    uint16
	hasPend bool
	synced  bool // a frame start was already consumed by the previous call
}

func newBlockScanner(r io.Reader) *blockScanner {
	return &blockScanner{r: bufio.NewReader(r)}
}

func (s *blockScanner) word() (uint16, error) {
	if s.hasPend {
		s.hasPend = false
		return s.pend, nil
	}
	var b [2]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (s *blockScanner) unword(w uint16) {
	s.pend = w
	s.hasPend = true
}

// nextFrame blocks until a complete frame has been read and returns its
// blocks. Garbage and blocks with bad checksums are dropped; the scanner
// resynchronizes on the next double sync word.
func (s *blockScanner) nextFrame() ([]control.Block, error) {
	if !s.synced {
		// Scan byte-wise for the doubled sync so a stream joined mid-word
		// still aligns (0xaa55 little-endian is 0x55 0xaa on the wire).
		s.hasPend = false
		var window [4]byte
		seen := 0
		for {
			b, err := s.r.ReadByte()
			if err != nil {
				return nil, err
			}
			window[0], window[1], window[2] = window[1], window[2], window[3]
			window[3] = b
			seen++
			if seen >= 4 && window == [4]byte{0x55, 0xaa, 0x55, 0xaa} {
				break
			}
		}
	}
	s.synced = false

	var blocks []control.Block
	for {
		w, err := s.word()
		if err != nil {
			return nil, err
		}
		if w == syncWord {
			// A lone sync separates blocks; a second one starts the next
			// frame and ends this one.
			nw, err := s.word()
			if err != nil {
				return nil, err
			}
			if nw == syncWord {
				s.synced = true
				return blocks, nil
			}
			s.unword(nw)
			continue
		}

		// w is the checksum of the next block.
		var f [5]uint16
		sum := uint16(0)
		for i := range f {
			fw, err := s.word()
			if err != nil {
				return nil, err
			}
			f[i] = fw
			sum += fw
		}
		if sum != w {
			// Corrupted block; drop the rest of the frame and resync.
			log.Printf("vision: checksum mismatch, resyncing")
			return blocks, nil
		}
		blocks = append(blocks, control.Block{
			Signature: f[0],
			X:         float64(f[1]),
			Y:         float64(f[2]),
			Width:     float64(f[3]),
			Height:    float64(f[4]),
		})
	}
}
