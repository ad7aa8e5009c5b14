package response

// A struct type that represents a message with a status and body.
// Message has the following properties:
// - Status: The status of the message.
// - Body: The body of the message.
type Message struct {
	Status string
	Body   string
}

// ErrorResponse is the body written for every translated error,
// e.g. {"message":"Task not found"}.
type ErrorResponse struct {
	Message string `json:"message"`
}
