package flowconf

import (
	"context"
	"errors"
	"testing"

	flowcommand "github.com/goliatone/go-flowconf/command"
	"github.com/goliatone/go-flowconf/core"
	flowquery "github.com/goliatone/go-flowconf/query"
	"github.com/goliatone/go-flowconf/strategy"
)

type countingStrategy struct {
	id int
}

func (countingStrategy) Apply(context.Context, *core.Step) error { return nil }

func TestNewFacade_WiresCommandsAndQueries(t *testing.T) {
	registry := MustNewRegistry(Config{})
	facade, err := NewFacade(registry)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	commands := facade.Commands()
	if commands.RegisterProperty == nil || commands.RegisterSerializationToken == nil || commands.RegisterStrategyFactory == nil {
		t.Fatalf("expected command handlers to be wired")
	}
	queries := facade.Queries()
	if queries.BaseConfiguration == nil || queries.ConnectorConfig == nil || queries.ExecutionContext == nil {
		t.Fatalf("expected query handlers to be wired")
	}

	if _, err := NewFacade(nil); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}

func TestFacade_EndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Serialization.External = []string{"org.apache.WritableSerialization"}
	registry, err := NewRegistry(cfg)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	facade, err := NewFacade(registry)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	ctx := context.Background()
	commands := facade.Commands()

	if err := commands.RegisterProperty.Execute(ctx, flowcommand.RegisterPropertyMessage{Key: "queue", Value: "a"}); err != nil {
		t.Fatalf("register property: %v", err)
	}
	if err := commands.RegisterSerializationProvider.Execute(ctx, flowcommand.RegisterSerializationProviderMessage{Provider: "Avro"}); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	if err := commands.RegisterSerializationToken.Execute(ctx, flowcommand.RegisterSerializationTokenMessage{Token: 200, Codec: "MyCodec"}); err != nil {
		t.Fatalf("register token: %v", err)
	}
	err = commands.RegisterSerializationToken.Execute(ctx, flowcommand.RegisterSerializationTokenMessage{Token: 128, Codec: "MyCodec"})
	if !errors.Is(err, ErrInvalidTokenRange) {
		t.Fatalf("expected invalid token range, got %v", err)
	}

	next := 0
	factory := strategy.Simple(func() countingStrategy {
		next++
		return countingStrategy{id: next}
	})
	if err := commands.RegisterStrategyFactory.Execute(ctx, flowcommand.RegisterStrategyFactoryMessage{Factory: factory}); err != nil {
		t.Fatalf("register factory: %v", err)
	}

	cfgOut, err := facade.Queries().ConnectorConfig.Query(ctx, flowquery.ConnectorConfigMessage{
		Overrides: Properties{"queue": "b", "extra": 1},
	})
	if err != nil {
		t.Fatalf("connector config: %v", err)
	}
	props := cfgOut.Properties()
	if props["queue"] != "a" || props["extra"] != 1 {
		t.Fatalf("unexpected merged properties %#v", props)
	}
	if props[core.DefaultSerializationsKey] != "org.apache.WritableSerialization,Avro" {
		t.Fatalf("unexpected serializations %v", props[core.DefaultSerializationsKey])
	}
	if props[core.DefaultTokensKey] != "200=MyCodec" {
		t.Fatalf("unexpected tokens %v", props[core.DefaultTokensKey])
	}
	strategies := cfgOut.Strategies()
	if len(strategies) != 1 || strategies[0].(countingStrategy).id != 1 {
		t.Fatalf("expected one fresh factory strategy, got %#v", strategies)
	}

	ec, err := facade.Queries().ExecutionContext.Query(ctx, flowquery.ExecutionContextMessage{Properties: props})
	if err != nil {
		t.Fatalf("execution context: %v", err)
	}
	if ec.Properties["queue"] != "a" {
		t.Fatalf("unexpected execution context %#v", ec.Properties)
	}
}
