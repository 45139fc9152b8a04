package strategy

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-flowconf/core"
)

type tagStrategy struct {
	tag string
	log *[]string
}

func (s *tagStrategy) Apply(_ context.Context, _ *core.Step) error {
	*s.log = append(*s.log, s.tag)
	return nil
}

type counterStrategy struct {
	applied int
}

func (s *counterStrategy) Apply(context.Context, *core.Step) error {
	s.applied++
	return nil
}

func TestMulti_AppliesInOrder(t *testing.T) {
	var log []string
	multi := Compose(
		&tagStrategy{tag: "a", log: &log},
		nil,
		&tagStrategy{tag: "b", log: &log},
	)
	if multi.Len() != 2 {
		t.Fatalf("expected nil strategies to be dropped, got %d", multi.Len())
	}
	if err := multi.Apply(context.Background(), &core.Step{Name: "s"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !reflect.DeepEqual(log, []string{"a", "b"}) {
		t.Fatalf("unexpected order %v", log)
	}
}

func TestMulti_StopsAtFirstError(t *testing.T) {
	sentinel := errors.New("boom")
	var log []string
	multi := Compose(
		Func(func(context.Context, *core.Step) error { return sentinel }),
		&tagStrategy{tag: "never", log: &log},
	)
	err := multi.Apply(context.Background(), &core.Step{})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if len(log) != 0 {
		t.Fatalf("expected later strategies to be skipped, got %v", log)
	}
}

func TestSimpleAndOf_ProduceFreshInstances(t *testing.T) {
	simple := Simple(func() *counterStrategy { return &counterStrategy{} })
	if simple.NewStrategy() == simple.NewStrategy() {
		t.Fatalf("expected Simple to build a new instance per call")
	}

	of := Of[counterStrategy]()
	first, second := of.NewStrategy(), of.NewStrategy()
	if first == second {
		t.Fatalf("expected Of to build a new instance per call")
	}
	if _, ok := first.(*counterStrategy); !ok {
		t.Fatalf("expected *counterStrategy, got %T", first)
	}
}

func TestSetProperty_WritesStepProperties(t *testing.T) {
	step := &core.Step{Name: "s"}
	if err := SetProperty("mapred.job.priority", "HIGH").Apply(context.Background(), step); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if step.Properties["mapred.job.priority"] != "HIGH" {
		t.Fatalf("unexpected properties %#v", step.Properties)
	}
}

func TestApplyAll_UsesRegistryStrategies(t *testing.T) {
	r, err := core.NewRegistry(core.Config{})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	r.RegisterDefaultStrategyFactory(Simple(func() core.Strategy { return SetProperty("from", "default") }))

	caller := SetProperty("from", "caller")
	cfg := r.BuildConnectorConfig(nil, []core.Strategy{caller})
	ec := r.ConnectorExecutionContext(cfg)

	step := &core.Step{Name: "step-0"}
	if err := ApplyAll(context.Background(), ec, step); err != nil {
		t.Fatalf("apply all: %v", err)
	}
	if step.Properties["from"] != "default" {
		t.Fatalf("expected default strategy to run after caller strategy, got %#v", step.Properties)
	}
}
