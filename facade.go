package flowconf

import (
	"fmt"

	flowcommand "github.com/goliatone/go-flowconf/command"
	"github.com/goliatone/go-flowconf/core"
	flowquery "github.com/goliatone/go-flowconf/query"
)

// CommandQueryRegistry is the registry surface the facade needs.
type CommandQueryRegistry interface {
	core.ContributionStore
	core.SnapshotSource
	core.ConnectorFactory
}

type Commands struct {
	RegisterProperty              *flowcommand.RegisterPropertyCommand
	RegisterSerializationProvider *flowcommand.RegisterSerializationProviderCommand
	RegisterSerializationToken    *flowcommand.RegisterSerializationTokenCommand
	RegisterStrategyFactory       *flowcommand.RegisterStrategyFactoryCommand
}

type Queries struct {
	BaseConfiguration *flowquery.BaseConfigurationQuery
	JobConfig         *flowquery.JobConfigQuery
	ConnectorConfig   *flowquery.ConnectorConfigQuery
	ExecutionContext  *flowquery.ExecutionContextQuery
}

type Facade struct {
	registry CommandQueryRegistry
	commands Commands
	queries  Queries
}

func NewFacade(registry CommandQueryRegistry) (*Facade, error) {
	if registry == nil {
		return nil, fmt.Errorf("flowconf: registry is required")
	}
	return &Facade{
		registry: registry,
		commands: Commands{
			RegisterProperty:              flowcommand.NewRegisterPropertyCommand(registry),
			RegisterSerializationProvider: flowcommand.NewRegisterSerializationProviderCommand(registry),
			RegisterSerializationToken:    flowcommand.NewRegisterSerializationTokenCommand(registry),
			RegisterStrategyFactory:       flowcommand.NewRegisterStrategyFactoryCommand(registry),
		},
		queries: Queries{
			BaseConfiguration: flowquery.NewBaseConfigurationQuery(registry),
			JobConfig:         flowquery.NewJobConfigQuery(registry),
			ConnectorConfig:   flowquery.NewConnectorConfigQuery(registry),
			ExecutionContext:  flowquery.NewExecutionContextQuery(registry),
		},
	}, nil
}

func (f *Facade) Registry() CommandQueryRegistry {
	if f == nil {
		return nil
	}
	return f.registry
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}
