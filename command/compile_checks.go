package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[RegisterPropertyMessage]              = (*RegisterPropertyCommand)(nil)
	_ gocmd.Commander[RegisterSerializationProviderMessage] = (*RegisterSerializationProviderCommand)(nil)
	_ gocmd.Commander[RegisterSerializationTokenMessage]    = (*RegisterSerializationTokenCommand)(nil)
	_ gocmd.Commander[RegisterStrategyFactoryMessage]       = (*RegisterStrategyFactoryCommand)(nil)
)
