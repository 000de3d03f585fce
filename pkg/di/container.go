package di

import (
	"github.com/goliatone/go-welfare-cycle/cache"
	"github.com/goliatone/go-welfare-cycle/internal/memstore"
	"github.com/goliatone/go-welfare-cycle/welfare"
)

// Config bundles the two configuration surfaces the container wires: the
// cache store and the welfare engine.
type Config struct {
	Cache  memstore.Config
	Engine welfare.Config
}

// DefaultConfig returns the container configuration with both surfaces at
// their defaults.
func DefaultConfig() Config {
	return Config{
		Cache:  memstore.DefaultConfig(),
		Engine: welfare.DefaultConfig(),
	}
}

// Container provides dependency injection for the welfare engine. It manages
// the singleton cache store and service, wired over the caller's data
// provider.
type Container struct {
	store   cache.Store
	service *welfare.Service
	config  Config
}

// NewContainer creates a container with the provided configuration. The data
// provider is the caller's storage collaborator, typically a bunstore.Store.
// A nil clock selects the real clock.
func NewContainer(provider welfare.DataProvider, config Config, clock welfare.Clock) (*Container, error) {
	store, err := memstore.New(config.Cache)
	if err != nil {
		return nil, err
	}

	service, err := welfare.NewService(provider, store, config.Engine, clock)
	if err != nil {
		return nil, err
	}

	return &Container{
		store:   store,
		service: service,
		config:  config,
	}, nil
}

// NewContainerWithDefaults creates a container using default configuration.
// This is the convenience constructor for typical use.
func NewContainerWithDefaults(provider welfare.DataProvider) (*Container, error) {
	return NewContainer(provider, DefaultConfig(), nil)
}

// Service returns the singleton welfare service instance.
func (c *Container) Service() *welfare.Service {
	return c.service
}

// Store returns the singleton cache store. This allows direct access to the
// cache for advanced use cases such as out-of-band invalidation.
func (c *Container) Store() cache.Store {
	return c.store
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config {
	return c.config
}
