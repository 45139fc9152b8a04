package command

import (
	"context"

	"github.com/goliatone/go-flowconf/core"
)

type RegisterPropertyCommand struct {
	store core.ContributionStore
}

func NewRegisterPropertyCommand(store core.ContributionStore) *RegisterPropertyCommand {
	return &RegisterPropertyCommand{store: store}
}

func (c *RegisterPropertyCommand) Execute(_ context.Context, msg RegisterPropertyMessage) error {
	if c == nil || c.store == nil {
		return commandDependencyError("command: contribution store is required")
	}
	c.store.RegisterProperty(msg.Key, msg.Value)
	return nil
}

type RegisterSerializationProviderCommand struct {
	store core.ContributionStore
}

func NewRegisterSerializationProviderCommand(store core.ContributionStore) *RegisterSerializationProviderCommand {
	return &RegisterSerializationProviderCommand{store: store}
}

func (c *RegisterSerializationProviderCommand) Execute(_ context.Context, msg RegisterSerializationProviderMessage) error {
	if c == nil || c.store == nil {
		return commandDependencyError("command: contribution store is required")
	}
	c.store.RegisterSerializationProvider(msg.Provider)
	return nil
}

type RegisterSerializationTokenCommand struct {
	store core.ContributionStore
}

func NewRegisterSerializationTokenCommand(store core.ContributionStore) *RegisterSerializationTokenCommand {
	return &RegisterSerializationTokenCommand{store: store}
}

// Execute forwards registration errors unchanged so callers can match
// core.ErrInvalidTokenRange and core.ErrTokenConflict.
func (c *RegisterSerializationTokenCommand) Execute(_ context.Context, msg RegisterSerializationTokenMessage) error {
	if c == nil || c.store == nil {
		return commandDependencyError("command: contribution store is required")
	}
	return c.store.RegisterSerializationToken(msg.Token, msg.Codec)
}

type RegisterStrategyFactoryCommand struct {
	store core.ContributionStore
}

func NewRegisterStrategyFactoryCommand(store core.ContributionStore) *RegisterStrategyFactoryCommand {
	return &RegisterStrategyFactoryCommand{store: store}
}

func (c *RegisterStrategyFactoryCommand) Execute(_ context.Context, msg RegisterStrategyFactoryMessage) error {
	if c == nil || c.store == nil {
		return commandDependencyError("command: contribution store is required")
	}
	if msg.Factory == nil {
		return commandInvalidInputError("command: strategy factory is required")
	}
	c.store.RegisterDefaultStrategyFactory(msg.Factory)
	return nil
}
