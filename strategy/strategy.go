// Package strategy contains helpers for building and composing execution
// strategies registered with the core registry.
package strategy

import (
	"context"
	"fmt"

	"github.com/goliatone/go-flowconf/core"
)

// Func adapts a function to core.Strategy.
type Func func(ctx context.Context, step *core.Step) error

func (f Func) Apply(ctx context.Context, step *core.Step) error {
	if f == nil {
		return nil
	}
	return f(ctx, step)
}

// Multi applies its children in order and stops at the first error.
type Multi struct {
	strategies []core.Strategy
}

func Compose(strategies ...core.Strategy) *Multi {
	filtered := make([]core.Strategy, 0, len(strategies))
	for _, strategy := range strategies {
		if strategy == nil {
			continue
		}
		filtered = append(filtered, strategy)
	}
	return &Multi{strategies: filtered}
}

func (m *Multi) Apply(ctx context.Context, step *core.Step) error {
	if m == nil {
		return nil
	}
	for index, strategy := range m.strategies {
		if err := strategy.Apply(ctx, step); err != nil {
			return fmt.Errorf("strategy: %d (%s) failed: %w", index, core.TypeNameOf(strategy), err)
		}
	}
	return nil
}

func (m *Multi) Len() int {
	if m == nil {
		return 0
	}
	return len(m.strategies)
}

func (m *Multi) Strategies() []core.Strategy {
	if m == nil {
		return nil
	}
	return append([]core.Strategy(nil), m.strategies...)
}

// Simple returns a factory that calls ctor for every new strategy.
func Simple[T core.Strategy](ctor func() T) core.StrategyFactory {
	return core.StrategyFactoryFunc(func() core.Strategy {
		if ctor == nil {
			return nil
		}
		return ctor()
	})
}

// Of returns a factory that builds a zero value of T for every call. T must
// be a pointer type so each call yields a distinct instance.
func Of[T any, PT interface {
	*T
	core.Strategy
}]() core.StrategyFactory {
	return core.StrategyFactoryFunc(func() core.Strategy {
		return PT(new(T))
	})
}

// SetProperty returns a strategy that writes key=value into each step's
// properties.
func SetProperty(key string, value any) core.Strategy {
	return Func(func(_ context.Context, step *core.Step) error {
		if step == nil {
			return nil
		}
		if step.Properties == nil {
			step.Properties = core.Properties{}
		}
		step.Properties[key] = value
		return nil
	})
}

// ApplyAll runs ec's strategies against step in order.
func ApplyAll(ctx context.Context, ec core.ExecutionContext, step *core.Step) error {
	return Compose(ec.Strategies...).Apply(ctx, step)
}

var (
	_ core.Strategy = Func(nil)
	_ core.Strategy = (*Multi)(nil)
)
