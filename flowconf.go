package flowconf

import "github.com/goliatone/go-flowconf/core"

type Config = core.Config

type SerializationConfig = core.SerializationConfig

type Option = core.Option

type Registry = core.Registry

type RegistryDependencies = core.RegistryDependencies

type TypeName = core.TypeName
type Properties = core.Properties
type Step = core.Step
type Strategy = core.Strategy
type StrategyFactory = core.StrategyFactory
type StrategyFactoryFunc = core.StrategyFactoryFunc

type BaseConfiguration = core.BaseConfiguration
type ConnectorConfig = core.ConnectorConfig
type ExecutionContext = core.ExecutionContext

const ReservedTokenThreshold = core.ReservedTokenThreshold

var (
	ErrInvalidTokenRange = core.ErrInvalidTokenRange
	ErrTokenConflict     = core.ErrTokenConflict
)

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorFactory    = core.WithErrorFactory
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithIDGenerator     = core.WithIDGenerator
	WithClock           = core.WithClock
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewRegistry(cfg Config, opts ...Option) (*Registry, error) {
	return core.NewRegistry(cfg, opts...)
}

func MustNewRegistry(cfg Config, opts ...Option) *Registry {
	return core.MustNewRegistry(cfg, opts...)
}

// TypeNameOf returns the registry identity of value's dynamic type.
func TypeNameOf(value any) TypeName {
	return core.TypeNameOf(value)
}
