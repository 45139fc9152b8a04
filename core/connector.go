package core

import (
	"time"
)

// BuildJobConfig returns a fresh property map carrying the serialization
// provider list and the token table under the configured keys. Callers own
// the returned map.
func (r *Registry) BuildJobConfig() Properties {
	base := r.BaseConfiguration()
	return Properties{
		r.config.Serialization.PropertyKey: base.Serializations,
		r.config.Serialization.TokensKey:   base.Tokens,
	}
}

// BuildConnectorConfig composes caller overrides, registered defaults and
// strategies into a new ConnectorConfig.
//
// Merge order is DefaultsOverrideCaller: overrides are copied first and
// registered defaults are written on top, so a process-wide registration
// always wins over a call site for the same key. The two serialization keys
// are written last and win over both.
//
// Strategies are extra in the given order followed by one new instance per
// registered factory, in registration order.
func (r *Registry) BuildConnectorConfig(overrides Properties, extra []Strategy) ConnectorConfig {
	startedAt := time.Now()
	base := r.BaseConfiguration()

	r.mu.RLock()
	serializations, tokens := base.Serializations, base.Tokens
	if r.version.Load() != base.Version {
		// A mutation landed after the snapshot; join from the same read so
		// properties never run ahead of the serialization strings.
		serializations = joinSerializations(r.external, r.providers)
		tokens = joinTokens(r.tokens)
	}
	properties := mergeDefaultsOverCaller(overrides, r.properties)
	factories := append([]StrategyFactory(nil), r.factories...)
	r.mu.RUnlock()

	properties[r.config.Serialization.PropertyKey] = serializations
	properties[r.config.Serialization.TokensKey] = tokens

	strategies := make([]Strategy, 0, len(extra)+len(factories))
	for _, strategy := range extra {
		if strategy == nil {
			continue
		}
		strategies = append(strategies, strategy)
	}
	for _, factory := range factories {
		strategy := factory.NewStrategy()
		if strategy == nil {
			continue
		}
		strategies = append(strategies, strategy)
	}

	r.observeConnectorBuild(startedAt, len(properties), len(strategies))
	return ConnectorConfig{properties: properties, strategies: strategies}
}

// mergeDefaultsOverCaller copies overrides and then defaults into a new map.
// The second pass deliberately overwrites keys set by the first.
func mergeDefaultsOverCaller(overrides Properties, defaults Properties) Properties {
	merged := make(Properties, len(overrides)+len(defaults)+2)
	for key, value := range overrides {
		merged[key] = value
	}
	for key, value := range defaults {
		merged[key] = value
	}
	return merged
}

// ExecutionContext wraps props into a handle for the execution engine. The
// properties are copied; no merging takes place.
func (r *Registry) ExecutionContext(props Properties) ExecutionContext {
	return ExecutionContext{
		ID:         r.idGenerator(),
		Properties: props.Clone(),
		CreatedAt:  r.clock(),
	}
}

// DefaultExecutionContext wraps a freshly built job config.
func (r *Registry) DefaultExecutionContext() ExecutionContext {
	return r.ExecutionContext(r.BuildJobConfig())
}

// ConnectorExecutionContext wraps a composed connector config, carrying its
// strategies along with its properties.
func (r *Registry) ConnectorExecutionContext(cfg ConnectorConfig) ExecutionContext {
	ec := r.ExecutionContext(cfg.properties)
	ec.Strategies = cfg.Strategies()
	return ec
}
