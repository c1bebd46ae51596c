package serviceiface

// Service is the lifecycle contract every managed service implements.
// Start must not block; long-running work runs on its own goroutine.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
