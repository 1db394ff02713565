// Package domain contains the core business entities of the task manager:
// users, tasks and the task read model, together with the field rules a task
// must satisfy when it is created or updated. It is independent of any
// storage or delivery mechanism.
package domain
