package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"TodoWebService/response"
	"TodoWebService/store"

	"github.com/sirupsen/logrus"
)

// BadRequestError marks a request that cannot be served as sent, such as a
// missing or unparsable body or a non numeric task id.
type BadRequestError struct {
	Message string
	Err     error
}

func (e *BadRequestError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *BadRequestError) Unwrap() error { return e.Err }

func badRequest(message string, err error) error {
	return &BadRequestError{Message: message, Err: err}
}

// AppHandler is a handler that reports failures by returning an error.
// Errors are translated into responses in one place by ErrorHandler.
type AppHandler func(http.ResponseWriter, *http.Request) error

// ErrorHandler writes the response for an error returned by an AppHandler:
//   - store.ErrNotFound: 404 {"message":"Task not found"}
//   - *BadRequestError: 400 with the error message
//   - anything else: 500 without any detail of the cause
//
// It returns the status code written.
func ErrorHandler(res http.ResponseWriter, req *http.Request, err error, log logrus.FieldLogger) int {
	var (
		status  int
		message string
		bad     *BadRequestError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		status, message = http.StatusNotFound, "Task not found"
	case errors.As(err, &bad):
		status, message = http.StatusBadRequest, bad.Message
	default:
		status, message = http.StatusInternalServerError, "Internal server error"
	}

	fields := requestFields(req)
	fields["status"] = status
	entry := log.WithFields(fields)
	if status == http.StatusInternalServerError {
		entry.Error(err.Error())
	} else {
		entry.Info(err.Error())
	}

	writeError(res, status, message)
	return status
}

func writeError(res http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(response.ErrorResponse{Message: message})
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	res.Write(body)
}

// writeJSON writes payload exactly as json.Marshal renders it, without the
// trailing newline json.Encoder would add. Only a marshal failure is
// returned; once the header is written the response belongs to the client.
func writeJSON(res http.ResponseWriter, status int, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	res.Write(body)
	return nil
}
