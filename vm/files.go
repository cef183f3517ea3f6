package vm

import "os"

// Syscall open-flag bits (spec.md §4.3.2).
const (
	FlagRead      = 1 << 0
	FlagWrite     = 1 << 1
	FlagCreate    = 1 << 2
	FlagExclusive = 1 << 3
	FlagTruncate  = 1 << 4
	FlagAppend    = 1 << 5
)

// Reserved handles for the host's standard streams.
const (
	handleStdin  = 0
	handleStdout = 1
	handleStderr = 2
	firstHandle  = 3
)

// FileTable is a dense small-integer index map from guest handle
// (>= 3) to host file descriptor. Slot i of the table backs handle
// i+3; handles 0,1,2 are reserved for stdin/stdout/stderr and never
// occupy a slot.
type FileTable struct {
	slots []*os.File
}

func newFileTable() *FileTable {
	return &FileTable{}
}

// open installs f into the first free slot (or a new one) and returns
// its guest handle.
func (t *FileTable) open(f *os.File) uint32 {
	for i, slot := range t.slots {
		if slot == nil {
			t.slots[i] = f
			return uint32(i + firstHandle)
		}
	}
	t.slots = append(t.slots, f)
	return uint32(len(t.slots)-1) + firstHandle
}

// lookup returns the *os.File backing handle, or nil if handle is out
// of range or its slot is empty.
func (t *FileTable) lookup(handle uint32) *os.File {
	if handle < firstHandle {
		return nil
	}
	idx := int(handle - firstHandle)
	if idx < 0 || idx >= len(t.slots) {
		return nil
	}
	return t.slots[idx]
}

// close closes and frees the slot backing handle, syncing first so the
// file's contents are durable once the handle is gone.
func (t *FileTable) close(handle uint32) error {
	f := t.lookup(handle)
	if f == nil {
		return os.ErrInvalid
	}
	idx := int(handle - firstHandle)
	_ = f.Sync()
	err := f.Close()
	t.slots[idx] = nil
	return err
}

// closeAll closes every still-open slot; used on VM teardown.
func (t *FileTable) closeAll() error {
	var firstErr error
	for i, f := range t.slots {
		if f == nil {
			continue
		}
		_ = f.Sync()
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		t.slots[i] = nil
	}
	return firstErr
}

// openFlags translates the guest's bitmask (spec.md §4.3.2) into the
// host's os.O_* flags, following the teacher's handleOpen precedent of
// mapping the bits straight onto os.OpenFile without reinterpretation.
func openFlags(guestFlags uint32) int {
	var flags int
	switch {
	case guestFlags&FlagRead != 0 && guestFlags&FlagWrite != 0:
		flags |= os.O_RDWR
	case guestFlags&FlagWrite != 0:
		flags |= os.O_WRONLY
	default:
		flags |= os.O_RDONLY
	}
	if guestFlags&FlagCreate != 0 {
		flags |= os.O_CREATE
	}
	if guestFlags&FlagExclusive != 0 {
		flags |= os.O_EXCL
	}
	if guestFlags&FlagTruncate != 0 {
		flags |= os.O_TRUNC
	}
	if guestFlags&FlagAppend != 0 {
		flags |= os.O_APPEND
	}
	return flags
}
