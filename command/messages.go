package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-flowconf/core"
)

const (
	TypeRegisterProperty              = "flowconf.command.property.register"
	TypeRegisterSerializationProvider = "flowconf.command.serialization_provider.register"
	TypeRegisterSerializationToken    = "flowconf.command.serialization_token.register"
	TypeRegisterStrategyFactory       = "flowconf.command.strategy_factory.register"
)

type RegisterPropertyMessage struct {
	Key   string
	Value any
}

func (RegisterPropertyMessage) Type() string { return TypeRegisterProperty }

func (m RegisterPropertyMessage) Validate() error {
	if m.Key == "" {
		return commandValidationError("key", "property key is required")
	}
	return nil
}

type RegisterSerializationProviderMessage struct {
	Provider core.TypeName
}

func (RegisterSerializationProviderMessage) Type() string { return TypeRegisterSerializationProvider }

func (m RegisterSerializationProviderMessage) Validate() error {
	if strings.TrimSpace(m.Provider.String()) == "" {
		return commandValidationError("provider", "serialization provider type is required")
	}
	return nil
}

type RegisterSerializationTokenMessage struct {
	Token int
	Codec core.TypeName
}

func (RegisterSerializationTokenMessage) Type() string { return TypeRegisterSerializationToken }

func (m RegisterSerializationTokenMessage) Validate() error {
	if m.Token <= core.ReservedTokenThreshold {
		return commandValidationError("token", fmt.Sprintf("serialization token must be greater than %d", core.ReservedTokenThreshold))
	}
	if strings.TrimSpace(m.Codec.String()) == "" {
		return commandValidationError("codec", "serialization token codec type is required")
	}
	return nil
}

type RegisterStrategyFactoryMessage struct {
	Factory core.StrategyFactory
}

func (RegisterStrategyFactoryMessage) Type() string { return TypeRegisterStrategyFactory }

func (m RegisterStrategyFactoryMessage) Validate() error {
	if m.Factory == nil {
		return commandValidationError("factory", "strategy factory is required")
	}
	return nil
}
