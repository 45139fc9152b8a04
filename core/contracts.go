package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// ReservedTokenThreshold is the highest serialization token reserved by the
// execution engine. Registered tokens must be strictly greater.
const ReservedTokenThreshold = 128

const (
	DefaultSerializationsKey = "io.serializations"
	DefaultTokensKey         = "cascading.serialization.tokens"
)

// Strategy is an opaque per-step customization handed to the execution
// engine. The registry stores and replays strategies but never applies them.
type Strategy interface {
	Apply(ctx context.Context, step *Step) error
}

// StrategyFactory produces a new Strategy on every call.
type StrategyFactory interface {
	NewStrategy() Strategy
}

// StrategyFactoryFunc adapts a constructor to StrategyFactory.
type StrategyFactoryFunc func() Strategy

func (f StrategyFactoryFunc) NewStrategy() Strategy {
	if f == nil {
		return nil
	}
	return f()
}

// Step is the unit of work a Strategy customizes before the engine runs it.
type Step struct {
	ID         string
	Name       string
	Index      int
	Properties Properties
}

type ContributionStore interface {
	RegisterProperty(key string, value any)
	RegisterSerializationProvider(provider TypeName)
	RegisterSerializationToken(token int, typ TypeName) error
	RegisterDefaultStrategyFactory(factory StrategyFactory)
}

type SnapshotSource interface {
	BaseConfiguration() BaseConfiguration
}

type ConnectorFactory interface {
	BuildJobConfig() Properties
	BuildConnectorConfig(overrides Properties, extra []Strategy) ConnectorConfig
	ExecutionContext(props Properties) ExecutionContext
	DefaultExecutionContext() ExecutionContext
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
