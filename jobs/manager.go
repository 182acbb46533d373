// Package jobs owns background work: in-flight upstream fetches and periodic maintenance.
package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

// PeriodicTask runs immediately on Start and then every Interval until Stop
type PeriodicTask struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Manager tracks every goroutine it launches so Stop can wait for them
type Manager struct {
	tasks   []PeriodicTask
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	stopped bool
	mu      sync.RWMutex
}

// NewManager creates a new job manager
func NewManager(tasks ...PeriodicTask) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		tasks:  tasks,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the periodic tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		log.Println("Job manager is already running")
		return
	}
	if m.stopped {
		log.Println("Job manager has been stopped and cannot be restarted")
		return
	}

	m.running = true
	log.Println("Starting job manager...")

	for _, task := range m.tasks {
		m.wg.Add(1)
		go m.runPeriodic(task)
	}
}

// Stop cancels running work and waits for every tracked goroutine to return
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	log.Println("Stopping job manager...")
	m.stopped = true
	m.running = false
	m.cancel()
	m.mu.Unlock()

	m.wg.Wait()
	log.Println("Job manager stopped")
}

// IsRunning returns whether the periodic tasks are currently scheduled
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// Go runs fn on a tracked goroutine. The context passed to fn is canceled when
// either ctx or the manager is done. Go returns false once the manager is stopped.
func (m *Manager) Go(ctx context.Context, name string, fn func(ctx context.Context)) bool {
	m.mu.RLock()
	if m.stopped {
		m.mu.RUnlock()
		log.Printf("Job manager stopped, not starting %s", name)
		return false
	}
	m.wg.Add(1)
	m.mu.RUnlock()

	taskCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(m.ctx, cancel)

	go func() {
		defer m.wg.Done()
		defer stop()
		defer cancel()
		fn(taskCtx)
	}()
	return true
}

func (m *Manager) runPeriodic(task PeriodicTask) {
	defer m.wg.Done()

	if err := task.Run(m.ctx); err != nil {
		log.Printf("Initial %s failed: %v", task.Name, err)
	}

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			log.Printf("Periodic %s stopped", task.Name)
			return
		case <-ticker.C:
			if err := task.Run(m.ctx); err != nil {
				log.Printf("Periodic %s failed: %v", task.Name, err)
			}
		}
	}
}
