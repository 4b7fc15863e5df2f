package response

import (
	"github.com/gofiber/fiber/v2"
)

const TraceIDKey = "traceId"

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *ErrorInfo  `json:"error"`
	Meta    Meta        `json:"meta"`
}

type ErrorInfo struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	TraceID string `json:"traceId,omitempty"`
}

type ErrorCode string

const (
	ErrCodeInvalidPayload       ErrorCode = "INVALID_PAYLOAD"
	ErrCodeBadJSON              ErrorCode = "BAD_JSON"
	ErrCodeRequirementsNotMet   ErrorCode = "REQUIREMENTS_NOT_SATISFIED"
	ErrCodeUsernameTaken        ErrorCode = "USERNAME_TAKEN"
	ErrCodeConversationNotGroup ErrorCode = "CONVERSATION_NOT_GROUP"
	ErrCodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrCodeTokenMissing         ErrorCode = "TOKEN_MISSING"
	ErrCodeTokenBad             ErrorCode = "TOKEN_BAD"
	ErrCodeTokenExpired         ErrorCode = "TOKEN_EXPIRED"
	ErrCodeUserDoesNotExist     ErrorCode = "USER_DOES_NOT_EXIST"
	ErrCodeIncorrectPassword    ErrorCode = "INCORRECT_PASSWORD"
	ErrCodeForbidden            ErrorCode = "FORBIDDEN"
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeConflict             ErrorCode = "CONFLICT"
	ErrCodeTooManyRequests      ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeDatabase             ErrorCode = "DATABASE_ERROR"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

func OK(c *fiber.Ctx, data interface{}) error {
	return send(c, fiber.StatusOK, data, nil)
}

func Created(c *fiber.Ctx, data interface{}) error {
	return send(c, fiber.StatusCreated, data, nil)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, ErrCodeInvalidPayload, message, nil)
}

func BadRequestWithDetails(c *fiber.Ctx, code ErrorCode, message string, details interface{}) error {
	return Error(c, fiber.StatusBadRequest, code, message, details)
}

func BadJSON(c *fiber.Ctx) error {
	return Error(c, fiber.StatusBadRequest, ErrCodeBadJSON, "BAD JSON", nil)
}

func Unauthorized(c *fiber.Ctx, code ErrorCode, message string) error {
	return Error(c, fiber.StatusUnauthorized, code, message, nil)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, ErrCodeForbidden, message, nil)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, ErrCodeNotFound, message, nil)
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, ErrCodeConflict, message, nil)
}

func TooManyRequests(c *fiber.Ctx) error {
	return Error(c, fiber.StatusTooManyRequests, ErrCodeTooManyRequests, "TOO MANY REQUESTS", nil)
}

func DatabaseError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, ErrCodeDatabase, "INTERNAL DATABASE ERROR", nil)
}

func InternalError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, ErrCodeInternal, "internal server error", nil)
}

func Error(c *fiber.Ctx, status int, code ErrorCode, message string, details interface{}) error {
	errInfo := &ErrorInfo{
		Code:    code,
		Message: message,
		Details: details,
	}
	return send(c, status, nil, errInfo)
}

func send(c *fiber.Ctx, status int, data interface{}, errInfo *ErrorInfo) error {
	envelope := Envelope{
		Success: errInfo == nil,
		Data:    data,
		Error:   errInfo,
		Meta: Meta{
			TraceID: getTraceID(c),
		},
	}

	return c.Status(status).JSON(envelope)
}

func getTraceID(c *fiber.Ctx) string {
	if traceID := c.Locals(TraceIDKey); traceID != nil {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return ""
}
