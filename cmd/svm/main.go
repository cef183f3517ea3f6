// Command svm loads and runs a flat binary program image on the
// virtual machine.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/jamsch0/uni-project-svm/config"
	"github.com/jamsch0/uni-project-svm/debugger"
	"github.com/jamsch0/uni-project-svm/vm"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "svm: %v\n", err)
		os.Exit(1)
	}

	var (
		pageSize          uint32
		memoryDump        string
		verbose           bool
		enableBreakpoints bool
		traceFile         string
	)

	root := &cobra.Command{
		Use:   "svm <program>",
		Short: "Run a flat binary program image on the virtual machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(args[0], pageSize, memoryDump, traceFile, verbose, enableBreakpoints)
		},
	}
	root.Flags().Uint32VarP(&pageSize, "page-size", "p", cfg.Execution.DefaultPageSize, "memory page size, must divide 2^32")
	root.Flags().StringVarP(&memoryDump, "memory-dump", "m", "", "write full memory image to FILE after exit")
	root.Flags().BoolVarP(&verbose, "verbose", "v", cfg.Trace.Enabled, "trace each instruction and syscall number")
	root.Flags().BoolVarP(&enableBreakpoints, "enable-breakpoints", "b", cfg.Debugger.BreakpointsEnabled, "honour BREAK/CBREAK instructions")
	root.Flags().StringVar(&traceFile, "trace-file", cfg.Trace.OutputFile, "also write the instruction trace to FILE")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "svm: %v\n", err)
		os.Exit(1)
	}
}

func runProgram(path string, pageSize uint32, memoryDump, traceFile string, verbose, enableBreakpoints bool) error {
	image, err := os.ReadFile(path) // #nosec G304 -- CLI-provided path
	if err != nil {
		return err
	}

	machine, err := vm.New(image, pageSize)
	if err != nil {
		return err
	}
	defer machine.Close()

	if verbose {
		machine.Verbose = true
		machine.Tracer = newSlogTracer(traceFile)
	}

	var snapshotView *debugger.SnapshotView
	if enableBreakpoints {
		snapshotView = debugger.NewSnapshotView()
		machine.BreakpointsEnabled = true
		machine.BreakHost = snapshotView
		go func() {
			if err := snapshotView.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "svm: snapshot view: %v\n", err)
			}
		}()
		defer snapshotView.Stop()
	}

	runErr := machine.Run(context.Background())

	if memoryDump != "" {
		if err := os.WriteFile(memoryDump, machine.Mem.Dump(), 0644); err != nil { // #nosec G306 -- diagnostic dump
			return fmt.Errorf("write memory dump: %w", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	os.Exit(int(machine.ExitCode))
	return nil
}

// newSlogTracer builds a vm.Tracer backed by log/slog, fanned out to
// stdout and (when a trace file path is configured, via SVM_TRACE_FILE,
// the --trace-file flag, or config.toml) that file, via slog-multi.
func newSlogTracer(traceFile string) *slogTracer {
	handlers := []slog.Handler{slog.NewTextHandler(os.Stdout, nil)}
	path := traceFile
	if env := os.Getenv("SVM_TRACE_FILE"); env != "" {
		path = env
	}
	if path != "" {
		if f, err := os.Create(path); err == nil { // #nosec G304 -- operator-controlled trace path
			handlers = append(handlers, slog.NewTextHandler(f, nil))
		}
	}
	logger := slog.New(slogmulti.Fanout(handlers...))
	return &slogTracer{logger: logger}
}

type slogTracer struct {
	logger *slog.Logger
}

func (t *slogTracer) TraceStep(pc uint32, size int, opcode byte) {
	t.logger.Info("step", "pc", fmt.Sprintf("0x%08x", pc), "size", size, "opcode", fmt.Sprintf("0x%02x", opcode))
}

func (t *slogTracer) TraceSyscall(number uint32) {
	t.logger.Info("syscall", "number", number)
}
