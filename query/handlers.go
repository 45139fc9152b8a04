package query

import (
	"context"

	"github.com/goliatone/go-flowconf/core"
)

type BaseConfigurationQuery struct {
	source core.SnapshotSource
}

func NewBaseConfigurationQuery(source core.SnapshotSource) *BaseConfigurationQuery {
	return &BaseConfigurationQuery{source: source}
}

func (q *BaseConfigurationQuery) Query(_ context.Context, _ BaseConfigurationMessage) (core.BaseConfiguration, error) {
	if q == nil || q.source == nil {
		return core.BaseConfiguration{}, queryDependencyError("query: snapshot source is required")
	}
	return q.source.BaseConfiguration(), nil
}

type JobConfigQuery struct {
	factory core.ConnectorFactory
}

func NewJobConfigQuery(factory core.ConnectorFactory) *JobConfigQuery {
	return &JobConfigQuery{factory: factory}
}

func (q *JobConfigQuery) Query(_ context.Context, _ JobConfigMessage) (core.Properties, error) {
	if q == nil || q.factory == nil {
		return nil, queryDependencyError("query: connector factory is required")
	}
	return q.factory.BuildJobConfig(), nil
}

type ConnectorConfigQuery struct {
	factory core.ConnectorFactory
}

func NewConnectorConfigQuery(factory core.ConnectorFactory) *ConnectorConfigQuery {
	return &ConnectorConfigQuery{factory: factory}
}

func (q *ConnectorConfigQuery) Query(_ context.Context, msg ConnectorConfigMessage) (core.ConnectorConfig, error) {
	if q == nil || q.factory == nil {
		return core.ConnectorConfig{}, queryDependencyError("query: connector factory is required")
	}
	return q.factory.BuildConnectorConfig(msg.Overrides, msg.Strategies), nil
}

type ExecutionContextQuery struct {
	factory core.ConnectorFactory
}

func NewExecutionContextQuery(factory core.ConnectorFactory) *ExecutionContextQuery {
	return &ExecutionContextQuery{factory: factory}
}

func (q *ExecutionContextQuery) Query(_ context.Context, msg ExecutionContextMessage) (core.ExecutionContext, error) {
	if q == nil || q.factory == nil {
		return core.ExecutionContext{}, queryDependencyError("query: connector factory is required")
	}
	if msg.Properties == nil {
		return q.factory.DefaultExecutionContext(), nil
	}
	return q.factory.ExecutionContext(msg.Properties), nil
}
