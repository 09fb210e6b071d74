package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/diewo77/lead-hunter/internal/store"
	"gorm.io/gorm"
)

// AuthGate is the entry point for turning a user id into the acting user.
// Loaded users are kept in a TTL cache; call InvalidateUser when a user's
// role or group changes and InvalidateAll when a group's flags change.
type AuthGate struct {
	Resolver *gate.CachedResolver[string]
	users    *store.UserStore
}

// NewAuthGate builds a gate backed by db.
// - cacheSize: how many users to keep
// - cacheTTL: how long a loaded user stays valid (e.g. 5*time.Minute)
func NewAuthGate(db *gorm.DB, cacheSize int, cacheTTL time.Duration) *AuthGate {
	users := store.NewUserStore(db)
	return &AuthGate{
		Resolver: gate.NewCachedResolver[string](NewDBSubjectResolver(users), cacheSize, cacheTTL),
		users:    users,
	}
}

// LoadActor returns the user with AccessGroup.Permission loaded.
func (ag *AuthGate) LoadActor(ctx context.Context, userID string) (*models.User, error) {
	s, err := ag.Resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	u, ok := s.(*models.User)
	if !ok {
		return nil, fmt.Errorf("actor %s: unexpected subject %T", userID, s)
	}
	return u, nil
}

// LoadActorByEmail looks up the id behind email and loads it through the cache.
func (ag *AuthGate) LoadActorByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := ag.users.IDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return ag.LoadActor(ctx, id)
}

// Authorize loads userID and checks c against it.
func (ag *AuthGate) Authorize(ctx context.Context, userID string, c gate.Capability) error {
	u, err := ag.LoadActor(ctx, userID)
	if err != nil {
		return err
	}
	return gate.Authorize(u, c)
}

// Can is Authorize returning a bool.
func (ag *AuthGate) Can(ctx context.Context, userID string, c gate.Capability) bool {
	return ag.Authorize(ctx, userID, c) == nil
}

func (ag *AuthGate) InvalidateUser(userID string) {
	ag.Resolver.Invalidate(userID)
}

func (ag *AuthGate) InvalidateAll() {
	ag.Resolver.InvalidateAll()
}
