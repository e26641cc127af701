// Package user is the Postgres-backed read side of the User entity.
// The engine never creates or mutates users, that belongs to an
// external profile/OAuth service, so this repository is read-only,
// unlike the booking and recurring repositories.
package user

import (
	"database/sql"
	"fmt"
	"strings"

	"context"

	"github.com/Masterminds/squirrel"

	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/pkg/dbmetrics"
	"github.com/tutorly/booking-engine/pkg/psqlbuilder"
)

// Repository reads users and their roles.
type Repository struct {
	db DBExecutor
}

// NewRepository builds a Repository over db (either *sql.DB or a
// metrics-wrapped *dbmetrics.DB).
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID loads a user with its roles, or ErrUserNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "roles").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	var rolesCSV string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name, &rolesCSV)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	u.Roles = parseRoles(rolesCSV)
	return &u, nil
}

func parseRoles(csv string) []domain.Role {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	roles := make([]domain.Role, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, domain.Role(p))
	}
	return roles
}
