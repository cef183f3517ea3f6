// Package mem implements the guest's sparse, paged 32-bit address
// space: pages materialise lazily on first write, unmapped reads
// yield zero bytes, and every access wraps modulo 2^32.
package mem

import "fmt"

// AddressSpaceSize is the total size of the 32-bit byte-addressable
// address space.
const AddressSpaceSize uint64 = 1 << 32

// DefaultPageSize is used when no custom page size is requested.
const DefaultPageSize = 1 << 16

// Memory is a sparse byte-addressable 32-bit address space backed by
// fixed-size pages. A page is allocated on first write; reads of an
// unmapped page return zero without allocating it.
type Memory struct {
	pageSize   uint32
	pageCount  uint64
	pages      map[uint64][]byte
	ReadCount  uint64
	WriteCount uint64
}

// New creates a Memory instance with the given page size, which must
// be a power of two dividing 2^32.
func New(pageSize uint32) (*Memory, error) {
	if pageSize == 0 || AddressSpaceSize%uint64(pageSize) != 0 {
		return nil, fmt.Errorf("mem: page size %d does not divide 2^32", pageSize)
	}
	return &Memory{
		pageSize:  pageSize,
		pageCount: AddressSpaceSize / uint64(pageSize),
		pages:     make(map[uint64][]byte),
	}, nil
}

// PageSize returns the configured page size in bytes.
func (m *Memory) PageSize() uint32 {
	return m.pageSize
}

// page returns the byte slice backing the page index, allocating and
// zero-filling it on first touch when alloc is true.
func (m *Memory) page(index uint64, alloc bool) []byte {
	index %= m.pageCount
	p, ok := m.pages[index]
	if !ok {
		if !alloc {
			return nil
		}
		p = make([]byte, m.pageSize)
		m.pages[index] = p
	}
	return p
}

// Read fills buf with bytes starting at addr, wrapping at 2^32 and
// crossing page boundaries as needed. Unmapped pages contribute zero
// bytes without being allocated.
func (m *Memory) Read(addr uint32, buf []byte) {
	cur := uint64(addr)
	for i := 0; i < len(buf); {
		pageIdx := cur / uint64(m.pageSize)
		offset := cur % uint64(m.pageSize)
		n := len(buf) - i
		if room := int(uint64(m.pageSize) - offset); n > room {
			n = room
		}
		p := m.page(pageIdx, false)
		if p == nil {
			for j := 0; j < n; j++ {
				buf[i+j] = 0
			}
		} else {
			copy(buf[i:i+n], p[offset:offset+uint64(n)])
		}
		i += n
		cur = (cur + uint64(n)) % AddressSpaceSize
		m.ReadCount++
	}
}

// Write copies buf into memory starting at addr, allocating pages
// zero-filled on first touch and wrapping at 2^32.
func (m *Memory) Write(addr uint32, buf []byte) {
	cur := uint64(addr)
	for i := 0; i < len(buf); {
		pageIdx := cur / uint64(m.pageSize)
		offset := cur % uint64(m.pageSize)
		n := len(buf) - i
		if room := int(uint64(m.pageSize) - offset); n > room {
			n = room
		}
		p := m.page(pageIdx, true)
		copy(p[offset:offset+uint64(n)], buf[i:i+n])
		i += n
		cur = (cur + uint64(n)) % AddressSpaceSize
		m.WriteCount++
	}
}

// ReadU32 reads a little-endian 32-bit word starting at addr.
func (m *Memory) ReadU32(addr uint32) uint32 {
	var buf [4]byte
	m.Read(addr, buf[:])
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

// WriteU32 writes value as a little-endian 32-bit word starting at addr.
func (m *Memory) WriteU32(addr, value uint32) {
	buf := [4]byte{byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)}
	m.Write(addr, buf[:])
}

// AllocatedPages returns the number of pages currently materialised,
// for diagnostics and memory-dump tooling.
func (m *Memory) AllocatedPages() int {
	return len(m.pages)
}

// Dump returns the full 2^32-byte address space as a byte slice,
// expanding every unmapped page to zeros. Intended for the host's
// memory-dump tool only; the VM core never calls this itself.
func (m *Memory) Dump() []byte {
	out := make([]byte, AddressSpaceSize)
	for idx, p := range m.pages {
		copy(out[idx*uint64(m.pageSize):], p)
	}
	return out
}
