package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// spinnerOut receives spinner frames. It is stderr so stdout stays clean
// for piped output.
var spinnerOut io.Writer = os.Stderr

// spinnerFrames is a quarter-filled circle turning clockwise.
var spinnerFrames = []string{"◴", "◷", "◶", "◵"}

const spinnerInterval = 100 * time.Millisecond

// spinner animates a status line while the pipeline runs. The message can
// change between frames; the line is cleared when the spinner stops or its
// context ends.
type spinner struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	width   int // widest message drawn, for clearing

	once    sync.Once
	started bool
	stopped chan struct{}
}

func newSpinner(ctx context.Context, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{ctx: ctx, cancel: cancel, message: message, stopped: make(chan struct{})}
}

func (s *spinner) start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		defer s.clear()
		t := time.NewTicker(spinnerInterval)
		defer t.Stop()
		for i := 0; ; i++ {
			s.draw(spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-s.ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(s.message))
	fmt.Fprintf(spinnerOut, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.message),
		strings.Repeat(" ", s.width-len(s.message)))
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(spinnerOut, "\r%s\r", strings.Repeat(" ", s.width+2))
}

// update replaces the message shown from the next frame on.
func (s *spinner) update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// stageUpdater returns a pipeline.Options.OnStage callback that describes
// each stage of rendering input.
func (s *spinner) stageUpdater(input string) func(string) {
	return func(stage string) {
		switch stage {
		case pipeline.StageLoad:
			s.update(fmt.Sprintf("Loading %s...", input))
		case pipeline.StageLayout:
			s.update(fmt.Sprintf("Partitioning %s...", input))
		case pipeline.StageRender:
			s.update(fmt.Sprintf("Drawing %s...", input))
		}
	}
}

// stop halts the animation and waits for the line to be cleared. It may be
// called more than once.
func (s *spinner) stop() {
	s.once.Do(s.cancel)
	if s.started {
		<-s.stopped
	}
}

// fail stops the spinner and prints message as an error.
func (s *spinner) fail(message string) {
	s.stop()
	printError("%s", message)
}

// cancelled reports whether the spinner's context has ended.
func (s *spinner) cancelled() bool {
	return s.ctx.Err() != nil
}
