package dashboard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/store/client"
)

// Deps are what a view needs to load and present its report.
type Deps struct {
	Source    client.ReportSource
	Brand     string
	Formatter report.Formatter
}

// ViewFactory creates a view bound to a brand.
type ViewFactory func(deps Deps) (report.View, error)

// Registry manages view factories
type Registry interface {
	// Register adds a new view factory
	Register(name string, factory ViewFactory) error
	// Create instantiates the named view
	Create(name string, deps Deps) (report.View, error)
	// ListViews returns the registered view names, sorted
	ListViews() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ViewFactory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]ViewFactory),
	}
}

// DefaultRegistry has the warehouse and item views registered.
func DefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(ViewWarehouse, NewWarehouseView)
	_ = r.Register(ViewItem, NewItemView)
	return r
}

func (r *registry) Register(name string, factory ViewFactory) error {
	if name == "" {
		return fmt.Errorf("view name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("view %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(name string, deps Deps) (report.View, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return report.View{}, fmt.Errorf("view %q is not registered", name)
	}

	return factory(deps)
}

func (r *registry) ListViews() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	views := make([]string, 0, len(r.factories))
	for name := range r.factories {
		views = append(views, name)
	}
	sort.Strings(views)
	return views
}
