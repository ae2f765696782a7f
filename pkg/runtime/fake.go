package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FakeContainer tracks the state of one container inside a Fake adapter.
type FakeContainer struct {
	ID      string
	Opts    CreateOptions
	Running bool
}

// Fake is an in-memory Adapter used by tests. Each operation can be made to
// fail by setting the corresponding Fail* field.
type Fake struct {
	mu         sync.Mutex
	containers map[string]*FakeContainer
	nextID     int

	FailCreate  bool
	FailStart   bool
	FailStop    bool
	FailDestroy bool
	FailExec    bool

	// CreateHook, when set, runs before each Create and can veto it by
	// returning an error. Tests use it for selective failures.
	CreateHook func(opts CreateOptions) error

	// ExecHandler, when set, decides the result of Exec calls. Otherwise
	// every exec succeeds with empty output.
	ExecHandler func(id string, cmd []string) (ExecResult, error)

	// CreateCalls counts provisioning attempts, including failed ones.
	CreateCalls int
}

// NewFake returns an empty in-memory adapter.
func NewFake() *Fake {
	return &Fake{containers: make(map[string]*FakeContainer)}
}

// Create provisions an in-memory container in the running state.
func (f *Fake) Create(ctx context.Context, opts CreateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.FailCreate {
		return "", fmt.Errorf("fake: create failed")
	}
	if f.CreateHook != nil {
		if err := f.CreateHook(opts); err != nil {
			return "", err
		}
	}

	f.nextID++
	id := fmt.Sprintf("fake-%04d", f.nextID)
	f.containers[id] = &FakeContainer{ID: id, Opts: opts, Running: true}
	return id, nil
}

// Start marks the container running.
func (f *Fake) Start(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailStart {
		return fmt.Errorf("fake: start failed")
	}
	c, ok := f.containers[id]
	if !ok {
		return fmt.Errorf("fake: no such container %s", id)
	}
	c.Running = true
	return nil
}

// Stop marks the container stopped.
func (f *Fake) Stop(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailStop {
		return fmt.Errorf("fake: stop failed")
	}
	c, ok := f.containers[id]
	if !ok {
		return fmt.Errorf("fake: no such container %s", id)
	}
	c.Running = false
	return nil
}

// Restart marks the container running.
func (f *Fake) Restart(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.containers[id]
	if !ok {
		return fmt.Errorf("fake: no such container %s", id)
	}
	c.Running = true
	return nil
}

// Destroy removes the container. Missing containers are not an error,
// matching the Docker adapter.
func (f *Fake) Destroy(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailDestroy {
		return fmt.Errorf("fake: destroy failed")
	}
	delete(f.containers, id)
	return nil
}

// Exec runs ExecHandler or succeeds with empty output.
func (f *Fake) Exec(ctx context.Context, id string, cmd []string, timeout time.Duration) (ExecResult, error) {
	f.mu.Lock()
	handler := f.ExecHandler
	fail := f.FailExec
	_, ok := f.containers[id]
	f.mu.Unlock()

	if fail {
		return ExecResult{}, fmt.Errorf("fake: exec failed")
	}
	if !ok {
		return ExecResult{}, fmt.Errorf("fake: no such container %s", id)
	}
	if handler != nil {
		return handler(id, cmd)
	}
	return ExecResult{ExitCode: 0}, nil
}

// Exists reports whether the container is present.
func (f *Fake) Exists(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.containers[id]
	return ok, nil
}

// Running reports whether the container is present and running.
func (f *Fake) Running(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[id]
	return ok && c.Running, nil
}

// Container returns the tracked state for id, for test assertions.
func (f *Fake) Container(id string) (*FakeContainer, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[id]
	return c, ok
}

// Count returns the number of live containers.
func (f *Fake) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.containers)
}
