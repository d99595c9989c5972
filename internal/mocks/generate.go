// Package mocks provides mock implementations for testing the shop admin.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockAuth := mocks.NewMockAuthAPI(ctrl)
//	mockAuth.EXPECT().Me(gomock.Any(), "tok").Return(user, nil)
package mocks

// Generate mock for AuthAPI interface from internal/ports package.
// This creates MockAuthAPI with methods for all AuthAPI interface methods:
// Login, Me
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/target/shop-admin/internal/ports AuthAPI

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods for all SessionStore interface methods:
// Load, SaveToken, SaveUser, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/target/shop-admin/internal/ports SessionStore

// Generate mock for InventoryAPI interface from internal/ports package.
// This creates MockInventoryAPI with methods for all InventoryAPI interface methods:
// List, Adjust
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=inventory_api_mock.go github.com/target/shop-admin/internal/ports InventoryAPI
