package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-flowconf/core"
)

var (
	_ gocmd.Querier[BaseConfigurationMessage, core.BaseConfiguration] = (*BaseConfigurationQuery)(nil)
	_ gocmd.Querier[JobConfigMessage, core.Properties]                = (*JobConfigQuery)(nil)
	_ gocmd.Querier[ConnectorConfigMessage, core.ConnectorConfig]     = (*ConnectorConfigQuery)(nil)
	_ gocmd.Querier[ExecutionContextMessage, core.ExecutionContext]   = (*ExecutionContextQuery)(nil)
)
