package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserStoreSpy is a store.UserStore backed by testify/mock, for tests that
// assert on the exact arguments the identity service passes to the store.
// Every call must be set up with the Expect helpers or On.
type UserStoreSpy struct {
	mock.Mock
}

var _ store.UserStore = (*UserStoreSpy)(nil)

// ExpectGetByUsername expects one lookup of username and answers with user
// or err.
func (m *UserStoreSpy) ExpectGetByUsername(username string, user *domain.User, err error) *mock.Call {
	return m.On("GetByUsername", mock.Anything, username).Return(user, err).Once()
}

// ExpectCreate expects one insert of a user named username and assigns id
// to it when err is nil.
func (m *UserStoreSpy) ExpectCreate(username string, id int64, err error) *mock.Call {
	return m.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u != nil && u.Username == username
	})).Return(err).Once().Run(func(args mock.Arguments) {
		if err == nil {
			args.Get(1).(*domain.User).ID = id
		}
	})
}

// Create implements store.UserStore
func (m *UserStoreSpy) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// GetByID implements store.UserStore
func (m *UserStoreSpy) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// GetByUsername implements store.UserStore
func (m *UserStoreSpy) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// WithTx returns the spy itself so transactional calls are recorded on the
// same expectations.
func (m *UserStoreSpy) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
