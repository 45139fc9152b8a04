package core

import (
	"reflect"
	"strings"
	"time"
)

// TypeName is the fully-qualified identity of an opaque type such as a
// serialization provider or a token-bound codec.
type TypeName string

func (n TypeName) String() string { return string(n) }

// TypeNameOf returns the qualified name of the dynamic type of value,
// dereferencing pointers. It returns "" for nil.
func TypeNameOf(value any) TypeName {
	if value == nil {
		return ""
	}
	return typeNameOf(reflect.TypeOf(value))
}

// TypeNameFor returns the qualified name of T.
func TypeNameFor[T any]() TypeName {
	return typeNameOf(reflect.TypeOf((*T)(nil)).Elem())
}

func typeNameOf(t reflect.Type) TypeName {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return TypeName(t.String())
	}
	return TypeName(t.PkgPath() + "." + t.Name())
}

func normalizeTypeName(name TypeName) TypeName {
	return TypeName(strings.TrimSpace(string(name)))
}

// Properties is a key/value configuration bag.
type Properties map[string]any

// Clone returns a shallow copy that is never nil.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// StringValue returns the value at key when it is a string, or "".
func (p Properties) StringValue(key string) string {
	value, ok := p[key].(string)
	if !ok {
		return ""
	}
	return value
}

// BaseConfiguration is the memoized artifact derived from registered
// serialization providers and tokens.
type BaseConfiguration struct {
	Serializations string
	Tokens         string
	Version        uint64
	Fingerprint    uint64
}

// ConnectorConfig is the per-call composition of defaults, caller overrides
// and strategies. Accessors return copies.
type ConnectorConfig struct {
	properties Properties
	strategies []Strategy
}

func (c ConnectorConfig) Properties() Properties {
	return c.properties.Clone()
}

func (c ConnectorConfig) Strategies() []Strategy {
	return append([]Strategy(nil), c.strategies...)
}

func (c ConnectorConfig) Get(key string) (any, bool) {
	value, ok := c.properties[key]
	return value, ok
}

// ExecutionContext is the handle the execution engine consumes.
type ExecutionContext struct {
	ID         string
	Properties Properties
	Strategies []Strategy
	CreatedAt  time.Time
}
