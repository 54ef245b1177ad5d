// Package registry provides a global registry for service factories.
// Services register themselves in init() functions, allowing the CLI
// to discover and start them without hardcoded dependencies.
package registry

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-net/internal/config"
	"github.com/vovakirdan/tetris-net/internal/journal"
)

// Env is what a factory gets to build its service.
type Env struct {
	Config config.Config
	Logger *log.Logger

	// Journal may be nil when journaling is disabled.
	Journal *journal.Journal
}

// Service is a ready-to-serve HTTP component.
type Service struct {
	Name    string
	Addr    string
	Handler http.Handler
}

// Info describes a registered service.
type Info struct {
	Name  string
	Title string
}

// Factory builds a service from the environment.
type Factory func(env Env) (Service, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a service factory to the registry.
// Typically called from a service's init() function.
// Panics if a service with the same name is already registered.
func Register(name, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: service %q already registered", name))
	}

	factories[name] = f
	titles[name] = title
}

// List returns information about all registered services, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for name := range factories {
		result = append(result, Info{
			Name:  name,
			Title: titles[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create builds a service by name.
// Returns an error if the name is not registered or the factory fails.
func Create(name string, env Env) (Service, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return Service{}, fmt.Errorf("registry: unknown service %q", name)
	}

	svc, err := f(env)
	if err != nil {
		return Service{}, fmt.Errorf("registry: %s: %w", name, err)
	}
	return svc, nil
}

// Exists checks if a service with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
