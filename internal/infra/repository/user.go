package repository

import (
	"context"

	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserQueries interface {
	FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.FindUserByEmailRow, error)
	FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.FindUserByIDRow, error)
}

type UserRepository struct {
	queries UserQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email.Value())
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return toDomainUser(row.ID, row.Email, row.Name, row.Role)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toDomainUser(row.ID, row.Email, row.Name, row.Role)
}

func toDomainUser(id uuid.UUID, rawEmail, name, rawRole string) (*user.User, error) {
	email, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user email is invalid", err, infra.KindDataCorrupted)
	}
	role, err := user.NewRole(rawRole)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user role is invalid", err, infra.KindDataCorrupted)
	}
	u, err := user.NewUser(id, email, name, role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user is invalid", err, infra.KindDataCorrupted)
	}
	return u, nil
}
