package telemetry

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
)

// recordingSink is a minimal logr.LogSink that records the last message it
// was given, so tests can assert on what InvariantViolation/OptionChanged
// actually logged without depending on an external logr backend.
type recordingSink struct {
	infoMsg  string
	errorMsg string
}

func (s *recordingSink) Init(logr.RuntimeInfo)               {}
func (s *recordingSink) Enabled(int) bool                    { return true }
func (s *recordingSink) Info(_ int, msg string, _ ...any)    { s.infoMsg = msg }
func (s *recordingSink) Error(_ error, msg string, _ ...any) { s.errorMsg = msg }
func (s *recordingSink) WithValues(_ ...any) logr.LogSink    { return s }
func (s *recordingSink) WithName(_ string) logr.LogSink      { return s }

func TestOptionChangedLogsAtInfo(t *testing.T) {
	sink := &recordingSink{}
	old := Logger
	defer SetLogger(old)
	SetLogger(logr.New(sink))

	OptionChanged("Threads", "4")

	if sink.infoMsg != "option changed" {
		t.Errorf("got info message %q, want %q", sink.infoMsg, "option changed")
	}
}

func TestInvariantViolationLogsAtError(t *testing.T) {
	sink := &recordingSink{}
	old := Logger
	defer SetLogger(old)
	SetLogger(logr.New(sink))

	InvariantViolation("king bitboard empty", "side", 0)

	if sink.errorMsg != "king bitboard empty" {
		t.Errorf("got error message %q, want %q", sink.errorMsg, "king bitboard empty")
	}
}

func TestRecordNodesDoesNotPanicWithoutMeterProvider(t *testing.T) {
	RecordNodes(1000)
}

func TestStartSearchSpanEndIsCallable(t *testing.T) {
	_, end := StartSearchSpan(context.Background(), "startpos")
	end()
}
