// Package service contains the application use cases of the task manager.
// It orchestrates domain objects, the access policy and the store interfaces
// (defined in internal/store) to implement signup, login and the task
// operations exposed over HTTP.
//
// Key components:
//
//   - UserService: signup, credential checks and user listings
//   - TaskService: task create/read/list/update/delete, each running the
//     access policy and, where reads and writes are combined, a single
//     transaction
//   - BuildTaskQuery: turns list parameters into a store.TaskFilter
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete storage backend.
package service
