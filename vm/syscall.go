package vm

import "os"

const (
	sysExit   = 0
	sysRead   = 1
	sysWrite  = 2
	sysOpen   = 3
	sysClose  = 4
	sysCreate = 5
)

// syscall dispatches a CALL/CCALL on the low 16 bits of the instruction's
// immediate (spec.md §4.3.2). A terminal call (sys_exit) sets v.exited
// and v.ExitCode and returns nil; every other call writes its result to
// r3 and returns nil. Only an unknown syscall number yields an error,
// which also terminates the run.
func (v *VM) syscall(number uint32) error {
	if v.Tracer != nil {
		v.Tracer.TraceSyscall(number)
	}

	r := &v.Regs.R
	switch number {
	case sysExit:
		v.exited = true
		v.ExitCode = int32(r[RegArg0])
		return nil
	case sysRead:
		r[RegRet] = v.sysRead(r[RegArg0], r[RegArg0+1], r[RegArg0+2])
	case sysWrite:
		r[RegRet] = v.sysWrite(r[RegArg0], r[RegArg0+1], r[RegArg0+2])
	case sysOpen:
		r[RegRet] = v.sysOpen(r[RegArg0], r[RegArg0+1], r[RegArg0+2])
	case sysClose:
		r[RegRet] = v.sysClose(r[RegArg0])
	case sysCreate:
		r[RegRet] = v.sysOpen(r[RegArg0], r[RegArg0+1], FlagCreate|FlagWrite|FlagTruncate)
	default:
		return InvalidSysCall(number)
	}
	return nil
}

func (v *VM) hostFile(handle uint32) (*os.File, bool) {
	switch handle {
	case handleStdin:
		return os.Stdin, true
	case handleStdout:
		return os.Stdout, true
	case handleStderr:
		return os.Stderr, true
	default:
		f := v.Files.lookup(handle)
		return f, f != nil
	}
}

func (v *VM) sysRead(handle, ptr, length uint32) uint32 {
	if handle == handleStdout || handle == handleStderr {
		return negOne
	}
	f, ok := v.hostFile(handle)
	if !ok {
		return negOne
	}
	buf := make([]byte, length)
	n, err := f.Read(buf)
	if n > 0 {
		v.Mem.Write(ptr, buf[:n])
	}
	if err != nil && n == 0 {
		return negOne
	}
	return uint32(n)
}

// readMem copies length bytes from guest memory starting at ptr.
func (v *VM) readMem(ptr, length uint32) []byte {
	buf := make([]byte, length)
	v.Mem.Read(ptr, buf)
	return buf
}

func (v *VM) sysWrite(handle, ptr, length uint32) uint32 {
	if handle == handleStdin {
		return negOne
	}
	f, ok := v.hostFile(handle)
	if !ok {
		return negOne
	}
	buf := v.readMem(ptr, length)
	n, err := f.Write(buf)
	if err != nil {
		return negOne
	}
	return uint32(n)
}

func (v *VM) sysOpen(ptr, length, flags uint32) uint32 {
	path := string(v.readMem(ptr, length))
	f, err := os.OpenFile(path, openFlags(flags), 0644)
	if err != nil {
		return negOne
	}
	return v.Files.open(f)
}

func (v *VM) sysClose(handle uint32) uint32 {
	if err := v.Files.close(handle); err != nil {
		return negOne
	}
	return 0
}

// negOne is the syscall error sentinel, a signed -1 reinterpreted as
// the unsigned register value the core stores it as.
const negOne = 0xFFFFFFFF
