package service

import "fmt"

const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
)

// Public messages. Handlers send them to clients verbatim.
const (
	MsgTaskNotFound          = "Task not found"
	MsgNoActiveTimer         = "No active timer found"
	MsgMissingFields         = "Missing required fields"
	MsgInvalidDifficulty     = "Invalid difficulty level"
	MsgInvalidEstimate       = "Invalid estimatedMinutes. Must be a non-negative integer"
	MsgInvalidStatus         = "Invalid status"
	MsgInvalidFunRating      = "Invalid funRating. Must be a number between 1 and 5"
	MsgFunRatingRequiresDone = "funRating can only be set when status is done"
	MsgInvalidTimerMode      = "Invalid timer mode. Use 'normal' or 'pomodoro'"
	MsgInvalidSort           = "Invalid sort direction"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewNotFound(message string, err error, details ...Detail) *BusinessError {
	busErr := NewBusinessError(CodeNotFound, message, details...)
	busErr.Err = err
	return busErr
}

func NewValidationError(field, message string) *BusinessError {
	return NewBusinessError(CodeValidation, message, ToDetail("field", field))
}
