package sensors

import (
	"bytes"
	"io"
	"testing"
)

// stream builds a little-endian byte stream from 16-bit words.
func stream(words ...uint16) []byte {
	b := make([]byte, 0, len(words)*2)
	for _, w := range words {
		b = append(b, byte(w), byte(w>>8))
	}
	return b
}

// blockWords encodes one block (sync, checksum, payload).
func blockWords(sig, x, y, w, h uint16) []uint16 {
	return []uint16{syncWord, sig + x + y + w + h, sig, x, y, w, h}
}

func TestScannerSingleBlockFrame(t *testing.T) {
	var words []uint16
	words = append(words, syncWord)                     // frame start doubles the block sync
	words = append(words, blockWords(1, 120, 90, 40, 20)...)
	words = append(words, syncWord, syncWord) // next frame start closes this one

	sc := newBlockScanner(bytes.NewReader(stream(words...)))
	blocks, err := sc.nextFrame()
	if err != nil {
		t.Fatalf("nextFrame: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Signature != 1 || b.X != 120 || b.Y != 90 || b.Width != 40 || b.Height != 20 {
		t.Errorf("block = %+v", b)
	}
}

func TestScannerMultiBlockFrame(t *testing.T) {
	var words []uint16
	words = append(words, syncWord)
	words = append(words, blockWords(1, 100, 80, 50, 25)...)
	words = append(words, blockWords(2, 200, 80, 30, 15)...)
	words = append(words, syncWord, syncWord)

	sc := newBlockScanner(bytes.NewReader(stream(words...)))
	blocks, err := sc.nextFrame()
	if err != nil {
		t.Fatalf("nextFrame: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Signature != 1 || blocks[1].Signature != 2 {
		t.Errorf("signatures = %v, %v", blocks[0].Signature, blocks[1].Signature)
	}
}

func TestScannerConsecutiveFrames(t *testing.T) {
	var words []uint16
	words = append(words, syncWord)
	words = append(words, blockWords(1, 100, 80, 20, 10)...)
	words = append(words, syncWord) // doubles with the next block's sync
	words = append(words, blockWords(1, 110, 80, 22, 11)...)
	words = append(words, syncWord, syncWord)

	sc := newBlockScanner(bytes.NewReader(stream(words...)))

	first, err := sc.nextFrame()
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	second, err := sc.nextFrame()
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("frames = %d, %d blocks, want 1 and 1", len(first), len(second))
	}
	if first[0].X != 100 || second[0].X != 110 {
		t.Errorf("xs = %v, %v, want 100, 110", first[0].X, second[0].X)
	}
}

func TestScannerSkipsGarbagePrefix(t *testing.T) {
	garbage := []byte{0x00, 0xff, 0x13} // odd length: stream joins mid-word
	var words []uint16
	words = append(words, syncWord, syncWord)
	words = append(words, blockWords(1, 150, 90, 35, 18)[1:]...) // frame start already doubled
	words = append(words, syncWord, syncWord)

	data := append(garbage, stream(words...)...)
	sc := newBlockScanner(bytes.NewReader(data))
	blocks, err := sc.nextFrame()
	if err != nil {
		t.Fatalf("nextFrame: %v", err)
	}
	if len(blocks) != 1 || blocks[0].X != 150 {
		t.Fatalf("blocks = %+v, want one block at x=150", blocks)
	}
}

func TestScannerDropsBadChecksum(t *testing.T) {
	bad := blockWords(1, 100, 80, 40, 20)
	bad[1]++ // corrupt the checksum

	var words []uint16
	words = append(words, syncWord)
	words = append(words, bad...)

	sc := newBlockScanner(bytes.NewReader(stream(words...)))
	blocks, err := sc.nextFrame()
	if err != nil {
		t.Fatalf("nextFrame: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("got %d blocks from a corrupted frame, want 0", len(blocks))
	}
}

func TestScannerEOFBeforeFrame(t *testing.T) {
	sc := newBlockScanner(bytes.NewReader(stream(0x1234, 0x5678)))
	if _, err := sc.nextFrame(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}
