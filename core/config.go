package core

import (
	"fmt"
	"strings"
)

type SerializationConfig struct {
	PropertyKey string   `koanf:"property_key" mapstructure:"property_key" toml:"property_key" yaml:"property_key"`
	TokensKey   string   `koanf:"tokens_key" mapstructure:"tokens_key" toml:"tokens_key" yaml:"tokens_key"`
	External    []string `koanf:"external" mapstructure:"external" toml:"external" yaml:"external"`
}

type Config struct {
	Name          string              `koanf:"name" mapstructure:"name" toml:"name" yaml:"name"`
	Serialization SerializationConfig `koanf:"serialization" mapstructure:"serialization" toml:"serialization" yaml:"serialization"`
	Properties    map[string]any      `koanf:"properties" mapstructure:"properties" toml:"properties" yaml:"properties"`
}

func DefaultConfig() Config {
	return Config{
		Name: "flowconf",
		Serialization: SerializationConfig{
			PropertyKey: DefaultSerializationsKey,
			TokensKey:   DefaultTokensKey,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("core: name is required")
	}
	serializationsKey := strings.TrimSpace(c.Serialization.PropertyKey)
	tokensKey := strings.TrimSpace(c.Serialization.TokensKey)
	if serializationsKey == "" {
		return fmt.Errorf("core: serialization.property_key is required")
	}
	if tokensKey == "" {
		return fmt.Errorf("core: serialization.tokens_key is required")
	}
	if serializationsKey == tokensKey {
		return fmt.Errorf("core: serialization.property_key and serialization.tokens_key must differ")
	}
	for key := range c.Properties {
		if key == "" {
			return fmt.Errorf("core: properties contain an invalid empty key")
		}
	}
	return nil
}

// externalSerializations returns the trimmed, non-empty pre-existing
// provider names in declaration order.
func (c Config) externalSerializations() []TypeName {
	out := make([]TypeName, 0, len(c.Serialization.External))
	for _, entry := range c.Serialization.External {
		for _, part := range strings.Split(entry, ",") {
			name := normalizeTypeName(TypeName(part))
			if name == "" {
				continue
			}
			out = append(out, name)
		}
	}
	return out
}
