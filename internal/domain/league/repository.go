package league

import "context"

// Repository describes league catalog reads.
type Repository interface {
	List(ctx context.Context) ([]League, error)
}
