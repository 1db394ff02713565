// Package mocks holds test doubles for the store, auth and service
// interfaces.
//
// Most mocks are plain structs with function fields. A nil field falls back
// to a canned value such as Err or Identities, and the service mocks record
// their arguments for assertions. TestifyMockUserStore is the exception, built on testify's
// mock.Mock for tests that need call expectations.
//
// Service tests compose the store mocks behind a MockTransactor, which runs
// the transaction body directly against its Stores:
//
//	tasks := &mocks.MockTaskStore{}
//	users := mocks.NewMockUserStore()
//	tx := &mocks.MockTransactor{Stores: store.Stores{Users: users, Tasks: tasks}}
//
// HTTP tests authenticate through a MockIdentityResolver keyed by token:
//
//	resolver := &mocks.MockIdentityResolver{
//		Identities: map[string]domain.Identity{"owner-token": {ID: 1, Email: "olive@example.com"}},
//	}
package mocks
