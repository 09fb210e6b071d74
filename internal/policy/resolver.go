package policy

import (
	"context"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/store"
)

// DBSubjectResolver loads users with their access group and permission
// bundle preloaded. It implements gate.Resolver for string user ids.
type DBSubjectResolver struct {
	Users *store.UserStore
}

func NewDBSubjectResolver(users *store.UserStore) *DBSubjectResolver {
	return &DBSubjectResolver{Users: users}
}

// Resolve returns the user as a gate.Subject, or store.ErrNotFound.
func (r *DBSubjectResolver) Resolve(ctx context.Context, userID string) (gate.Subject, error) {
	u, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u, nil
}
