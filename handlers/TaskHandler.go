// Package handlers provides the HTTP request handlers for TodoWebService.
//
// This package contains the handlers for the /tasks resource: listing, retrieval, creation, update and deletion of tasks.
// Handlers return errors instead of writing failure responses themselves; every error is translated
// into a status code and a JSON body by ErrorHandler, so a missing task always yields
// 404 {"message":"Task not found"} whatever the route.
//
// The package also contains the middleware applied to every route: request ids, Prometheus counters and rate limiting.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"TodoWebService/commands"
	"TodoWebService/models"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// TaskService is what the handlers need to serve the /tasks resource.
// Operations on a missing id must fail with an error matching store.ErrNotFound.
type TaskService interface {
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id int64) (models.Task, error)
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Update(ctx context.Context, id int64, task models.Task) (models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TaskHandler struct {
	service  TaskService
	validate *validator.Validate
	log      logrus.FieldLogger
}

func NewTaskHandler(service TaskService, validate *validator.Validate, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{service: service, validate: validate, log: log}
}

// GetTasksHandler handles the HTTP request for retrieving all tasks.
// The tasks are returned in store order and an empty store yields an empty array.
//
// Example request:
// GET /tasks
//
// Example response:
// [{"id":1,"title":"TEST1"},{"id":2,"title":"TEST2"}]
func (h *TaskHandler) GetTasksHandler(res http.ResponseWriter, req *http.Request) error {
	tasks, err := h.service.List(req.Context())
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	h.log.WithFields(requestFields(req)).WithField("task operation", "get all tasks").Info("Processing request")
	return writeJSON(res, http.StatusOK, tasks)
}

// GetTaskHandler handles the HTTP request for retrieving the task with the given {id}.
//
// Example request:
// GET /tasks/1
//
// Example response:
// {"id":1,"title":"TEST1"}
func (h *TaskHandler) GetTaskHandler(res http.ResponseWriter, req *http.Request) error {
	id, err := taskID(req)
	if err != nil {
		return err
	}
	task, err := h.service.Get(req.Context(), id)
	if err != nil {
		return err
	}
	h.log.WithFields(requestFields(req)).WithField("task operation", "get task by id").Info("Processing request")
	return writeJSON(res, http.StatusOK, task)
}

// CreateTaskHandler handles the HTTP request for creating a new task.
// The title is required and must not be blank. An id in the request body is ignored;
// the store assigns the id of the new task.
//
// Example request body:
// {"title":"Task 1"}
//
// Example response (201 Created):
// {"id":3,"title":"Task 1"}
func (h *TaskHandler) CreateTaskHandler(res http.ResponseWriter, req *http.Request) error {
	var cmd commands.CreateTaskCommand
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil {
		return badRequest("Invalid request body", err)
	}
	if err := h.validate.Struct(cmd); err != nil {
		return badRequest("Invalid request body inputs", err)
	}
	task, err := h.service.Create(req.Context(), cmd.Task())
	if err != nil {
		return err
	}
	h.log.WithFields(requestFields(req)).WithFields(logrus.Fields{
		"task operation": "create a task",
		"task id":        task.Id,
	}).Info("Processing request")
	return writeJSON(res, http.StatusCreated, task)
}

// UpdateTaskHandler handles PUT and PATCH requests for the task with the given {id}.
// Both methods replace the title of the task; the id is taken from the path only.
// A missing body, a null body or a body without a title is rejected with 400.
//
// Example request body:
// {"title":"Update Title"}
//
// Example response:
// {"id":1,"title":"Update Title"}
func (h *TaskHandler) UpdateTaskHandler(res http.ResponseWriter, req *http.Request) error {
	id, err := taskID(req)
	if err != nil {
		return err
	}
	var cmd *commands.UpdateTaskCommand
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil {
		return badRequest("Invalid request body", err)
	}
	if cmd == nil {
		return badRequest("Invalid request body", nil)
	}
	if err := h.validate.Struct(cmd); err != nil {
		return badRequest("Invalid request body inputs", err)
	}
	task, err := h.service.Update(req.Context(), id, cmd.Task(id))
	if err != nil {
		return err
	}
	h.log.WithFields(requestFields(req)).WithFields(logrus.Fields{
		"task operation": "update a task",
		"task id":        task.Id,
	}).Info("Processing request")
	return writeJSON(res, http.StatusOK, task)
}

// DeleteTaskHandler handles the HTTP request for deleting the task with the given {id}.
// On success it answers 204 No Content with an empty body.
func (h *TaskHandler) DeleteTaskHandler(res http.ResponseWriter, req *http.Request) error {
	id, err := taskID(req)
	if err != nil {
		return err
	}
	if err := h.service.Delete(req.Context(), id); err != nil {
		return err
	}
	h.log.WithFields(requestFields(req)).WithFields(logrus.Fields{
		"task operation": "delete a task",
		"task id":        id,
	}).Info("Processing request")
	res.WriteHeader(http.StatusNoContent)
	return nil
}

func taskID(req *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		return 0, badRequest("Invalid task ID", err)
	}
	return id, nil
}
