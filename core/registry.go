package core

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Registry accumulates configuration contributions from independent call
// sites and materializes them into cached base configurations and per-call
// connector configurations.
//
// Create one Registry at process start and hand it to every call site that
// contributes or consumes configuration. All methods are safe for concurrent
// use.
type Registry struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	idGenerator     func() string
	clock           func() time.Time

	// mu guards the contribution state below. Every mutation bumps version
	// while holding the write lock.
	mu            sync.RWMutex
	external      []TypeName
	providers     []TypeName
	providerIndex map[TypeName]struct{}
	tokens        map[int]TypeName
	properties    Properties
	factories     []StrategyFactory
	version       atomic.Uint64

	cacheMu       sync.Mutex
	cached        BaseConfiguration
	cachedValid   bool
	cachedVersion uint64
}

type RegistryDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
}

func NewRegistry(cfg Config, opts ...Option) (*Registry, error) {
	builder := defaultRegistryBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("flowconf", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("flowconf"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.idGenerator == nil {
		builder.idGenerator = uuid.NewString
	}
	if builder.clock == nil {
		builder.clock = func() time.Time { return time.Now().UTC() }
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	r := &Registry{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		idGenerator:     builder.idGenerator,
		clock:           builder.clock,
		external:        finalConfig.externalSerializations(),
		providerIndex:   map[TypeName]struct{}{},
		tokens:          map[int]TypeName{},
		properties:      Properties{},
	}
	for key, value := range finalConfig.Properties {
		r.properties[key] = value
	}

	r.logInfo(context.Background(), "registry initialized", map[string]any{
		"name":                    finalConfig.Name,
		"external_serializations": len(r.external),
		"seed_properties":         len(r.properties),
	})
	return r, nil
}

func (r *Registry) newError(message string, category goerrors.Category) *goerrors.Error {
	if r.errorFactory != nil {
		if err := r.errorFactory(message, category); err != nil {
			return err
		}
	}
	return goerrors.New(message, category)
}

// MustNewRegistry panics when NewRegistry fails.
func MustNewRegistry(cfg Config, opts ...Option) *Registry {
	r, err := NewRegistry(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (r *Registry) Config() Config {
	if r == nil {
		return Config{}
	}
	return r.config
}

func (r *Registry) Dependencies() RegistryDependencies {
	if r == nil {
		return RegistryDependencies{}
	}
	return RegistryDependencies{
		Logger:          r.logger,
		LoggerProvider:  r.loggerProvider,
		MetricsRecorder: r.metricsRecorder,
		ErrorFactory:    r.errorFactory,
		ErrorMapper:     r.errorMapper,
		ConfigProvider:  r.configProvider,
		OptionsResolver: r.optionsResolver,
	}
}

// Version returns the number of state-changing mutations applied so far.
func (r *Registry) Version() uint64 {
	return r.version.Load()
}

// RegisterProperty sets a process-wide default property. Registered defaults
// take precedence over caller overrides in BuildConnectorConfig.
func (r *Registry) RegisterProperty(key string, value any) {
	if key == "" {
		r.logWarn(context.Background(), "register_property ignored empty key", nil)
		return
	}
	r.mu.Lock()
	r.properties[key] = value
	r.version.Add(1)
	r.mu.Unlock()

	r.observeRegistration("register_property", true, nil, map[string]any{"key": key})
}

// RegisterProperties applies every entry of props as a default property in a
// single mutation.
func (r *Registry) RegisterProperties(props Properties) {
	keys := make([]string, 0, len(props))
	for key := range props {
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	r.mu.Lock()
	for _, key := range keys {
		r.properties[key] = props[key]
	}
	r.version.Add(1)
	r.mu.Unlock()

	r.observeRegistration("register_properties", true, nil, map[string]any{"keys": keys})
}

func (r *Registry) RegisterSerializationProvider(provider TypeName) {
	provider = normalizeTypeName(provider)
	if provider == "" {
		r.logWarn(context.Background(), "register_serialization_provider ignored empty type", nil)
		return
	}

	r.mu.Lock()
	_, exists := r.providerIndex[provider]
	if !exists {
		r.providerIndex[provider] = struct{}{}
		r.providers = append(r.providers, provider)
		r.version.Add(1)
	}
	r.mu.Unlock()

	r.observeRegistration("register_serialization_provider", !exists, nil, map[string]any{
		"provider": provider.String(),
	})
}

// RegisterSerializationToken binds token to typ. The token must be greater
// than ReservedTokenThreshold and must not already be bound to another type.
// A failed call leaves the token table untouched.
func (r *Registry) RegisterSerializationToken(token int, typ TypeName) error {
	typ = normalizeTypeName(typ)
	fields := map[string]any{"token": token, "type": typ.String()}

	if token <= ReservedTokenThreshold {
		err := invalidTokenRangeError(token, typ)
		r.observeRegistration("register_serialization_token", false, err, fields)
		return err
	}
	if typ == "" {
		err := ensureErrorEnvelope(r.newError("core: serialization token type is required", goerrors.CategoryBadInput).
			WithTextCode(FlowconfErrorBadInput).
			WithMetadata(map[string]any{"token": token}))
		r.observeRegistration("register_serialization_token", false, err, fields)
		return err
	}

	r.mu.Lock()
	existing, bound := r.tokens[token]
	if bound && existing != typ {
		r.mu.Unlock()
		err := tokenConflictError(token, existing, typ)
		r.observeRegistration("register_serialization_token", false, err, fields)
		return err
	}
	if !bound {
		r.tokens[token] = typ
		r.version.Add(1)
	}
	r.mu.Unlock()

	r.observeRegistration("register_serialization_token", !bound, nil, fields)
	return nil
}

// MustRegisterSerializationToken panics when RegisterSerializationToken
// fails. Intended for init-time wiring.
func (r *Registry) MustRegisterSerializationToken(token int, typ TypeName) {
	if err := r.RegisterSerializationToken(token, typ); err != nil {
		panic(err)
	}
}

// RegisterDefaultStrategyFactory appends factory to the default strategies.
// Strategies do not feed the base configuration, so the snapshot is kept.
func (r *Registry) RegisterDefaultStrategyFactory(factory StrategyFactory) {
	if factory == nil {
		r.logWarn(context.Background(), "register_default_strategy_factory ignored nil factory", nil)
		return
	}
	r.mu.Lock()
	r.factories = append(r.factories, factory)
	count := len(r.factories)
	r.mu.Unlock()

	r.observeRegistration("register_default_strategy_factory", true, nil, map[string]any{
		"factory":  TypeNameOf(factory).String(),
		"position": count - 1,
	})
}

// RegisterDefaultStrategy registers a constructor that yields a new strategy
// per connector build.
func (r *Registry) RegisterDefaultStrategy(ctor func() Strategy) {
	if ctor == nil {
		r.RegisterDefaultStrategyFactory(nil)
		return
	}
	r.RegisterDefaultStrategyFactory(StrategyFactoryFunc(ctor))
}

func (r *Registry) SerializationProviders() []TypeName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]TypeName(nil), r.providers...)
}

func (r *Registry) SerializationTokens() map[int]TypeName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int]TypeName, len(r.tokens))
	for token, typ := range r.tokens {
		out[token] = typ
	}
	return out
}

func (r *Registry) DefaultProperties() Properties {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.properties.Clone()
}

func (r *Registry) StrategyFactoryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
