package repository

import (
	"context"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	state *StateRepository
}

// NewUserRepository returns a document-backed implementation.
func NewUserRepository(state *StateRepository) UserRepository {
	return &userRepository{state: state}
}

// Create assigns the next id and appends the user. The email check and the
// append happen under the same write lock.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.state.Update(ctx, func(doc *domain.Document) error {
		if _, exists := doc.FindUserByEmail(user.Email); exists {
			return ErrEmailTaken
		}
		user.ID = doc.AllocateUserID()
		doc.Users = append(doc.Users, *user)
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	doc := r.state.Read(ctx)
	user, ok := doc.FindUserByID(id)
	if !ok {
		return nil, ErrNotFound
	}
	found := *user
	return &found, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	doc := r.state.Read(ctx)
	user, ok := doc.FindUserByEmail(email)
	if !ok {
		return nil, ErrNotFound
	}
	found := *user
	return &found, nil
}
