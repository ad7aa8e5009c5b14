// Package commands contains the commands for the application to be used for request inputs.
package commands

import "TodoWebService/models"

// CreateTaskCommand represents a command to create a task.
// A client supplied Id is accepted but the store assigns the real one.
type CreateTaskCommand struct {
	Id    int64  `json:"id"`
	Title string `json:"title" validate:"required,fieldValidator"`
}

// Task converts the command into a task without an id.
func (c CreateTaskCommand) Task() models.Task {
	return models.Task{Title: c.Title}
}

// UpdateTaskCommand represents a command to update the title of a task.
// Title is a pointer so that a missing or null title can be told apart from an empty one.
type UpdateTaskCommand struct {
	Id    int64   `json:"id"`
	Title *string `json:"title" validate:"required"`
}

// Task converts a validated command into a task carrying the id from the request path.
func (c UpdateTaskCommand) Task(id int64) models.Task {
	return models.Task{Id: id, Title: *c.Title}
}
