package gocommand

import (
	"context"
	"fmt"
	"strings"

	gocmd "github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/goliatone/go-flowconf/command"
	"github.com/goliatone/go-flowconf/core"
	"github.com/goliatone/go-flowconf/query"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := gocmd.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(gocmd.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

// Binding holds the dispatcher subscriptions created by Bind.
type Binding struct {
	subscriptions []commanddispatcher.Subscription
}

func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.subscriptions)
}

// Close unsubscribes every handler registered by Bind.
func (b *Binding) Close() {
	if b == nil {
		return
	}
	for _, subscription := range b.subscriptions {
		if subscription != nil {
			subscription.Unsubscribe()
		}
	}
	b.subscriptions = nil
}

// Bind subscribes the registration commands and the configuration queries for
// registry on the go-command dispatcher. Messages are contract-validated
// before they reach the registry.
func Bind(registry *core.Registry, runnerOpts ...runner.Option) (*Binding, error) {
	if registry == nil {
		return nil, fmt.Errorf("gocommand: registry is required")
	}
	binding := &Binding{}
	binding.subscriptions = append(binding.subscriptions,
		subscribeCommand[command.RegisterPropertyMessage](command.NewRegisterPropertyCommand(registry), runnerOpts...),
		subscribeCommand[command.RegisterSerializationProviderMessage](command.NewRegisterSerializationProviderCommand(registry), runnerOpts...),
		subscribeCommand[command.RegisterSerializationTokenMessage](command.NewRegisterSerializationTokenCommand(registry), runnerOpts...),
		subscribeCommand[command.RegisterStrategyFactoryMessage](command.NewRegisterStrategyFactoryCommand(registry), runnerOpts...),
		subscribeQuery[query.BaseConfigurationMessage, core.BaseConfiguration](query.NewBaseConfigurationQuery(registry), runnerOpts...),
		subscribeQuery[query.JobConfigMessage, core.Properties](query.NewJobConfigQuery(registry), runnerOpts...),
		subscribeQuery[query.ConnectorConfigMessage, core.ConnectorConfig](query.NewConnectorConfigQuery(registry), runnerOpts...),
		subscribeQuery[query.ExecutionContextMessage, core.ExecutionContext](query.NewExecutionContextQuery(registry), runnerOpts...),
	)
	return binding, nil
}

func subscribeCommand[T any](cmd gocmd.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	handler := gocmd.CommandFunc[T](func(ctx context.Context, msg T) error {
		if err := ValidateMessageContract(msg); err != nil {
			return err
		}
		return cmd.Execute(ctx, msg)
	})
	return commanddispatcher.SubscribeCommand(handler, runnerOpts...)
}

func subscribeQuery[T any, R any](qry gocmd.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	handler := gocmd.QueryFunc[T, R](func(ctx context.Context, msg T) (R, error) {
		if err := ValidateMessageContract(msg); err != nil {
			var zero R
			return zero, err
		}
		return qry.Query(ctx, msg)
	})
	return commanddispatcher.SubscribeQuery(handler, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}
