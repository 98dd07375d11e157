package mocks

import "github.com/stretchr/testify/mock"

// TokenStore is a mock implementation of model.TokenStore.
type TokenStore struct {
	mock.Mock
}

func (m *TokenStore) Get() string {
	args := m.Called()
	return args.String(0)
}

func (m *TokenStore) Set(token string) {
	m.Called(token)
}

func (m *TokenStore) Clear() {
	m.Called()
}
