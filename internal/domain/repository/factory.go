package repository

import "context"

// Factory describes a storage backend and the repositories it serves.
type Factory interface {
	Orders() OrderRepository
	Sequence() OrderSequence
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
