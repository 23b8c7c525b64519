package service

import (
	"context"
	"fmt"
	"sync"

	"dashboard-reminders/internal/core/logger"
	"dashboard-reminders/internal/features/reminders/domain"
	"dashboard-reminders/internal/features/reminders/ports"

	"go.uber.org/zap"
)

// Registry is the ordered set of reminders running in one build flavor.
type Registry struct {
	flavor   string
	order    []string
	services map[string]ports.ReminderService
}

// NewRegistry creates an empty registry for flavor.
func NewRegistry(flavor string) *Registry {
	return &Registry{
		flavor:   flavor,
		services: make(map[string]ports.ReminderService),
	}
}

// Register adds svc unless its feature is unavailable in the registry's flavor.
// It reports whether svc was added.
func (r *Registry) Register(svc ports.ReminderService) (bool, error) {
	feature := svc.Feature()
	if !feature.AvailableIn(r.flavor) {
		logger.Get().Debug("Reminder not available in build flavor",
			zap.String("feature", feature.Name), zap.String("flavor", r.flavor))
		return false, nil
	}
	if _, exists := r.services[feature.Name]; exists {
		return false, fmt.Errorf("registry: reminder %q already registered", feature.Name)
	}

	r.order = append(r.order, feature.Name)
	r.services[feature.Name] = svc
	return true, nil
}

// Get returns the reminder of the named feature.
func (r *Registry) Get(name string) (ports.ReminderService, error) {
	svc, ok := r.services[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFeature, name)
	}
	return svc, nil
}

// All returns every registered reminder in registration order.
func (r *Registry) All() []ports.ReminderService {
	out := make([]ports.ReminderService, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.services[name])
	}
	return out
}

// Start kicks off the initial resolution of every reminder without blocking.
func (r *Registry) Start(ctx context.Context) {
	for _, svc := range r.All() {
		svc.Start(ctx)
	}
}

// Result is the outcome of resolving one reminder.
type Result struct {
	Feature domain.Feature
	Visible bool
	Err     error
}

// ResolveAll resolves every reminder concurrently and waits for all of them.
// Results keep registration order.
func (r *Registry) ResolveAll(ctx context.Context) []Result {
	services := r.All()
	results := make([]Result, len(services))

	var wg sync.WaitGroup
	for i, svc := range services {
		wg.Add(1)
		go func(i int, svc ports.ReminderService) {
			defer wg.Done()
			err := svc.Resolve(ctx)
			results[i] = Result{
				Feature: svc.Feature(),
				Visible: svc.CurrentlyVisible(),
				Err:     err,
			}
		}(i, svc)
	}
	wg.Wait()

	return results
}
