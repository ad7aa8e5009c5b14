// Package models contains the data models for the application to be used in request hanlding.
package models

// Task represents a task in the to-do list.
// Task has the following properties:
// - Id: The unique identifier of the task, assigned by the store.
// - Title: The title of the task.
//
// The field order is the serialization order: {"id":1,"title":"TEST1"}.
type Task struct {
	Id    int64  `json:"id"`
	Title string `json:"title"`
}
