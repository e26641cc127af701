package handlers

import (
	"context"

	"github.com/tutorly/booking-engine/internal/domain"
)

// UserRepository is the narrow dependency LoadActor needs to turn the
// X-User-ID header middleware.Auth stashed in ctx into a full
// *domain.User carrying roles, since every usecase's Request wants the
// actor's roles, not just their id.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// LoadActor resolves userID against repo. Handlers call this right
// after reading middleware.GetUserID, before building a usecase
// Request, so role-dependent checks (IsTutor, etc.) see the real user.
func LoadActor(ctx context.Context, repo UserRepository, userID int64) (*domain.User, error) {
	return repo.GetByID(ctx, userID)
}
