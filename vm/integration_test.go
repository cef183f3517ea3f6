package vm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jamsch0/uni-project-svm/asm"
	"github.com/jamsch0/uni-project-svm/vm"
)

// TestAssembleAndRunSumLoop exercises the assembler and the execution
// core together: a small counted loop sums 5+4+3+2+1 and exits with
// that total as its status code, using the $label relative branch form
// (exercising the same post-increment PC base BNZ uses at runtime).
func TestAssembleAndRunSumLoop(t *testing.T) {
	src := `
li r2, 5
li r3, 0
li r4, 1
loop:
add r3, r3, r2
sub r2, r2, r4
bnz r2, $loop
mv r4, r3
call 0
`
	image, err := asm.Assemble("sum.sasm", src)
	require.NoError(t, err)

	machine, err := vm.New(image, 4096)
	require.NoError(t, err)
	defer machine.Close()

	require.NoError(t, machine.Run(context.Background()))
	require.True(t, machine.Exited(), "expected sys_exit to have terminated the run")
	require.Equal(t, int32(15), machine.ExitCode)
}

// TestAssembleAndRunFibonacciLoop exercises a store-shape branch (blt)
// in a counted loop, confirming it shares the same post-increment PC
// base as the immediate-shape branches above.
func TestAssembleAndRunFibonacciLoop(t *testing.T) {
	src := `
li r4, 5
li r3, 0
li r5, 0
li r6, 1
loop:
addi r4, r4, -1
blt r4, r3, $done
add r5, r5, r6
add r6, r6, r5
addi r0, r0, $loop
done:
mv r4, r5
call 0
`
	image, err := asm.Assemble("fib.sasm", src)
	require.NoError(t, err)

	machine, err := vm.New(image, 4096)
	require.NoError(t, err)
	defer machine.Close()

	require.NoError(t, machine.Run(context.Background()))
	require.True(t, machine.Exited(), "expected sys_exit to have terminated the run")
	require.Equal(t, int32(55), machine.ExitCode)
}
