// Package debugger provides the host-side half of the BREAK protocol:
// a small full-screen view that renders the r0-r7 snapshot a BREAK
// instruction publishes, and blocks until the user presses a key to
// continue. spec.md keeps this UX entirely outside the execution core
// (vm.BreakpointHost is the only interface it consumes).
package debugger

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SnapshotView is a vm.BreakpointHost backed by a tview application: a
// bordered box showing r0-r7, re-drawn on every BREAK and blocking the
// guest's execution goroutine until "continue" is pressed.
type SnapshotView struct {
	app     *tview.Application
	view    *tview.TextView
	resume  chan struct{}
	started bool
}

// NewSnapshotView constructs a SnapshotView. Run must be called once
// before any Break call arrives; it blocks until Stop, so cmd/svm runs
// it on its own goroutine.
func NewSnapshotView() *SnapshotView {
	view := tview.NewTextView().SetDynamicColors(true)
	view.SetBorder(true).SetTitle(" BREAK — press any key to continue ")

	sv := &SnapshotView{
		app:    tview.NewApplication(),
		view:   view,
		resume: make(chan struct{}),
	}
	sv.app.SetRoot(view, true)
	sv.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		select {
		case sv.resume <- struct{}{}:
		default:
		}
		return event
	})
	return sv
}

// Run starts the tview event loop. It returns when Stop is called.
func (sv *SnapshotView) Run() error {
	sv.started = true
	return sv.app.Run()
}

// Stop tears down the tview application.
func (sv *SnapshotView) Stop() {
	if sv.started {
		sv.app.Stop()
	}
}

// Break implements vm.BreakpointHost: it renders the snapshot and
// blocks until the user acknowledges it.
func (sv *SnapshotView) Break(snapshot [8]uint32) {
	sv.app.QueueUpdateDraw(func() {
		sv.view.Clear()
		names := []string{"r0(pc)", "r1(sp)", "r2(lr)", "r3(ret)", "r4", "r5", "r6", "r7"}
		for i, v := range snapshot {
			fmt.Fprintf(sv.view, "%-7s 0x%08x\n", names[i], v)
		}
	})
	<-sv.resume
}
