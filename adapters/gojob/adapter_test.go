package gojob

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-flowconf/core"
	"github.com/goliatone/go-flowconf/strategy"

	job "github.com/goliatone/go-job"
)

func TestToExecutionMessage(t *testing.T) {
	ec := core.ExecutionContext{ID: "ctx-1", Properties: core.Properties{"queue": "a"}}
	msg := ToExecutionMessage(ec, " flow.step ", "scripts/step.js")
	if msg.JobID != "flow.step" || msg.ScriptPath != "scripts/step.js" {
		t.Fatalf("unexpected message %#v", msg)
	}
	if msg.IdempotencyKey != "ctx-1" || msg.DedupPolicy != DefaultDedupPolicy {
		t.Fatalf("unexpected dedup fields %#v", msg)
	}
	msg.Parameters["queue"] = "b"
	if ec.Properties["queue"] != "a" {
		t.Fatalf("expected parameters to be a copy")
	}
}

func TestSubmitter_AppliesStrategiesAndEnqueues(t *testing.T) {
	enqueuer := &stubQueueEnqueuer{}
	submitter := NewSubmitter(enqueuer, "scripts/run.js", WithDedupPolicy(job.DeduplicationPolicy("merge")))

	ec := core.ExecutionContext{
		ID:         "ctx-1",
		Properties: core.Properties{"queue": "a", "priority": "LOW"},
		Strategies: []core.Strategy{
			strategy.SetProperty("priority", "HIGH"),
			strategy.SetProperty("tagged", true),
		},
	}
	msg, err := submitter.Submit(context.Background(), ec, core.Step{Name: "join", Index: 2})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if enqueuer.last != msg {
		t.Fatalf("expected returned message to be the enqueued one")
	}
	if msg.JobID != "join" || msg.IdempotencyKey != "ctx-1:2" || msg.DedupPolicy != "merge" {
		t.Fatalf("unexpected message %#v", msg)
	}
	if msg.Parameters["queue"] != "a" || msg.Parameters["priority"] != "HIGH" || msg.Parameters["tagged"] != true {
		t.Fatalf("unexpected parameters %#v", msg.Parameters)
	}
	if ec.Properties["priority"] != "LOW" {
		t.Fatalf("expected context properties to stay untouched")
	}
	if submitter.JobLogger() == nil {
		t.Fatalf("expected go-job logger bridge")
	}
}

func TestSubmitter_StopsOnStrategyError(t *testing.T) {
	enqueuer := &stubQueueEnqueuer{}
	submitter := NewSubmitter(enqueuer, "scripts/run.js")
	sentinel := errors.New("boom")
	ec := core.ExecutionContext{
		ID: "ctx-1",
		Strategies: []core.Strategy{
			strategy.Func(func(context.Context, *core.Step) error { return sentinel }),
		},
	}

	_, err := submitter.Submit(context.Background(), ec, core.Step{Name: "join"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected strategy error, got %v", err)
	}
	if enqueuer.last != nil {
		t.Fatalf("expected nothing to be enqueued")
	}
}

func TestSubmitter_RequiresEnqueuerAndStepName(t *testing.T) {
	var nilSubmitter *Submitter
	if _, err := nilSubmitter.Submit(context.Background(), core.ExecutionContext{}, core.Step{Name: "x"}); err == nil {
		t.Fatalf("expected error for nil submitter")
	}
	submitter := NewSubmitter(&stubQueueEnqueuer{}, "scripts/run.js")
	if _, err := submitter.Submit(context.Background(), core.ExecutionContext{}, core.Step{}); err == nil {
		t.Fatalf("expected error for unnamed step")
	}

	failing := NewSubmitter(&stubQueueEnqueuer{err: errors.New("queue down")}, "scripts/run.js")
	if _, err := failing.Submit(context.Background(), core.ExecutionContext{ID: "c"}, core.Step{Name: "x"}); err == nil {
		t.Fatalf("expected enqueue error to surface")
	}
}

type stubQueueEnqueuer struct {
	last *job.ExecutionMessage
	err  error
}

func (s *stubQueueEnqueuer) Enqueue(_ context.Context, msg *job.ExecutionMessage) error {
	if s.err != nil {
		return s.err
	}
	s.last = msg
	return nil
}
