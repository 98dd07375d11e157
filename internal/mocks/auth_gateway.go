// Package mocks provides testify mocks for the interfaces in internal/model.
package mocks

import (
	"context"

	"github.com/dtroode/finfy-auth/internal/model"
	"github.com/stretchr/testify/mock"
)

// AuthGateway is a mock implementation of model.AuthGateway.
type AuthGateway struct {
	mock.Mock
}

func (m *AuthGateway) Login(ctx context.Context, email, password string) (model.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *AuthGateway) LoginWithGoogle(ctx context.Context, credential string) (model.Session, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *AuthGateway) ResolveGoogleConflict(ctx context.Context, credential string) (model.Session, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *AuthGateway) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
