// Package api handles incoming HTTP requests, request validation and
// response formatting for the task manager. Handlers translate HTTP
// concerns into calls on the user and task services and map service
// errors onto status codes and safe messages.
package api
