package engine

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Socket-strategy wire protocol, all integers little-endian:
//
//	work message (coordinator → worker), length-prefixed:
//	  u32 length | u64 low | u64 high | u64 n | n × u64 base primes
//	result message (worker → coordinator):
//	  u32 count
//
// Nothing is ever resent; a short or malformed message is fatal for the
// connection it arrived on.

const workHeaderLen = 24

func writeWork(w io.Writer, low, high uint64, basePrimes []uint64) error {
	payload := make([]byte, workHeaderLen+8*len(basePrimes))
	binary.LittleEndian.PutUint64(payload[0:], low)
	binary.LittleEndian.PutUint64(payload[8:], high)
	binary.LittleEndian.PutUint64(payload[16:], uint64(len(basePrimes)))
	for i, p := range basePrimes {
		binary.LittleEndian.PutUint64(payload[workHeaderLen+i*8:], p)
	}

	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(payload)))
	if _, err := w.Write(length[:]); err != nil {
		return fmt.Errorf("sending work length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("sending work payload: %w", err)
	}
	return nil
}

func readWork(r io.Reader) (low, high uint64, basePrimes []uint64, err error) {
	var lengthBuf [4]byte
	if _, err := io.ReadFull(r, lengthBuf[:]); err != nil {
		return 0, 0, nil, fmt.Errorf("reading work length: %w", err)
	}
	length := binary.LittleEndian.Uint32(lengthBuf[:])
	if length < workHeaderLen || (length-workHeaderLen)%8 != 0 {
		return 0, 0, nil, fmt.Errorf("malformed work message: length %d", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, 0, nil, fmt.Errorf("reading work payload: %w", err)
	}

	low = binary.LittleEndian.Uint64(payload[0:])
	high = binary.LittleEndian.Uint64(payload[8:])
	n := binary.LittleEndian.Uint64(payload[16:])
	if uint64(length)-workHeaderLen != 8*n {
		return 0, 0, nil, fmt.Errorf("malformed work message: %d base primes in %d payload bytes", n, length-workHeaderLen)
	}

	if n > 0 {
		basePrimes = make([]uint64, n)
		for i := range basePrimes {
			basePrimes[i] = binary.LittleEndian.Uint64(payload[workHeaderLen+i*8:])
		}
	}
	return low, high, basePrimes, nil
}

func writeCount(w io.Writer, count int) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(count))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("sending result: %w", err)
	}
	return nil
}

func readCount(r io.Reader) (int, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("reading result: %w", err)
	}
	return int(binary.LittleEndian.Uint32(buf[:])), nil
}
