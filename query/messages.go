package query

import "github.com/goliatone/go-flowconf/core"

const (
	TypeBaseConfiguration = "flowconf.query.base_configuration.load"
	TypeJobConfig         = "flowconf.query.job_config.build"
	TypeConnectorConfig   = "flowconf.query.connector_config.build"
	TypeExecutionContext  = "flowconf.query.execution_context.build"
)

type BaseConfigurationMessage struct{}

func (BaseConfigurationMessage) Type() string { return TypeBaseConfiguration }

func (BaseConfigurationMessage) Validate() error { return nil }

type JobConfigMessage struct{}

func (JobConfigMessage) Type() string { return TypeJobConfig }

func (JobConfigMessage) Validate() error { return nil }

type ConnectorConfigMessage struct {
	Overrides  core.Properties
	Strategies []core.Strategy
}

func (ConnectorConfigMessage) Type() string { return TypeConnectorConfig }

func (m ConnectorConfigMessage) Validate() error {
	return validatePropertyKeys("overrides", m.Overrides)
}

// ExecutionContextMessage wraps Properties as given. A nil map asks for the
// default job config instead.
type ExecutionContextMessage struct {
	Properties core.Properties
}

func (ExecutionContextMessage) Type() string { return TypeExecutionContext }

func (m ExecutionContextMessage) Validate() error {
	return validatePropertyKeys("properties", m.Properties)
}

func validatePropertyKeys(field string, props core.Properties) error {
	for key := range props {
		if key == "" {
			return queryValidationError(field, "property keys must not be empty")
		}
	}
	return nil
}
