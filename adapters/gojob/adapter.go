package gojob

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-flowconf/adapters/gologger"
	"github.com/goliatone/go-flowconf/core"
	"github.com/goliatone/go-flowconf/strategy"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	glog "github.com/goliatone/go-logger/glog"
)

const DefaultDedupPolicy = job.DeduplicationPolicy("drop")

// ToExecutionMessage maps an execution context onto a go-job message. The
// context properties become the job parameters and the context ID becomes the
// idempotency key.
func ToExecutionMessage(ec core.ExecutionContext, jobID string, scriptPath string) *job.ExecutionMessage {
	return &job.ExecutionMessage{
		JobID:          strings.TrimSpace(jobID),
		ScriptPath:     strings.TrimSpace(scriptPath),
		Parameters:     copyAnyMap(ec.Properties),
		IdempotencyKey: strings.TrimSpace(ec.ID),
		DedupPolicy:    DefaultDedupPolicy,
	}
}

type SubmitterOption func(*Submitter)

func WithLogger(logger glog.Logger) SubmitterOption {
	return func(s *Submitter) {
		s.logger = logger
	}
}

func WithDedupPolicy(policy job.DeduplicationPolicy) SubmitterOption {
	return func(s *Submitter) {
		if strings.TrimSpace(string(policy)) != "" {
			s.dedupPolicy = policy
		}
	}
}

// Submitter hands customized steps to the execution engine through a go-job
// enqueuer.
type Submitter struct {
	enqueuer    queue.Enqueuer
	scriptPath  string
	dedupPolicy job.DeduplicationPolicy
	logger      glog.Logger
}

func NewSubmitter(enqueuer queue.Enqueuer, scriptPath string, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		enqueuer:    enqueuer,
		scriptPath:  strings.TrimSpace(scriptPath),
		dedupPolicy: DefaultDedupPolicy,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	_, s.logger = gologger.Resolve("flowconf.gojob", nil, s.logger)
	s.logger = glog.Ensure(s.logger)
	return s
}

// JobLogger returns the submitter logger bridged to the go-job contract, for
// workers that consume the submitted messages.
func (s *Submitter) JobLogger() job.Logger {
	if s == nil {
		return nil
	}
	return gologger.ToJobLogger(s.logger)
}

// Submit copies the context properties into step, applies the context
// strategies in order and enqueues the result. The enqueued message is
// returned so callers can track it.
func (s *Submitter) Submit(ctx context.Context, ec core.ExecutionContext, step core.Step) (*job.ExecutionMessage, error) {
	if s == nil || s.enqueuer == nil {
		return nil, fmt.Errorf("gojob: enqueuer is not configured")
	}
	name := strings.TrimSpace(step.Name)
	if name == "" {
		return nil, fmt.Errorf("gojob: step name is required")
	}

	props := ec.Properties.Clone()
	for key, value := range step.Properties {
		props[key] = value
	}
	step.Properties = props
	if strings.TrimSpace(step.ID) == "" {
		step.ID = fmt.Sprintf("%s:%d", ec.ID, step.Index)
	}

	if err := strategy.ApplyAll(ctx, ec, &step); err != nil {
		s.logger.Error("step strategies failed", "context_id", ec.ID, "step", name, "error", err)
		return nil, fmt.Errorf("gojob: apply strategies to %q: %w", name, err)
	}

	msg := &job.ExecutionMessage{
		JobID:          name,
		ScriptPath:     s.scriptPath,
		Parameters:     copyAnyMap(step.Properties),
		IdempotencyKey: step.ID,
		DedupPolicy:    s.dedupPolicy,
	}
	if err := s.enqueuer.Enqueue(ctx, msg); err != nil {
		s.logger.Error("step enqueue failed", "context_id", ec.ID, "step", name, "error", err)
		return nil, fmt.Errorf("gojob: enqueue %q: %w", name, err)
	}
	s.logger.Debug("step submitted",
		"context_id", ec.ID,
		"step", name,
		"strategies", len(ec.Strategies),
		"parameters", len(msg.Parameters),
	)
	return msg, nil
}

func copyAnyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
