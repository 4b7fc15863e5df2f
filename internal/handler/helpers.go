package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/response"
	"github.com/aperturelabs/alms/internal/service"
)

// HandleDomainError writes the response for errors the caller can act on.
// Anything else is returned to the server's error handler, which logs it and
// answers 500.
func HandleDomainError(c *fiber.Ctx, err error) error {
	var validation *domain.ValidationError
	var unknown *service.UnknownEmployeesError

	switch {
	case errors.As(err, &validation):
		return response.BadRequestWithDetails(c, response.ErrCodeRequirementsNotMet, MsgRequirementsNotSatisfied, validation.Problems)
	case errors.As(err, &unknown):
		return response.BadRequestWithDetails(c, response.ErrCodeInvalidPayload, MsgEmployeesDoNotExist, unknown.Usernames)
	case errors.Is(err, service.ErrUnknownUser):
		return response.Unauthorized(c, response.ErrCodeUserDoesNotExist, MsgUserDoesNotExist)
	case errors.Is(err, service.ErrIncorrectPassword):
		return response.Unauthorized(c, response.ErrCodeIncorrectPassword, MsgIncorrectPassword)
	case errors.Is(err, domain.ErrNotGroup):
		return response.BadRequestWithDetails(c, response.ErrCodeConversationNotGroup, MsgConversationNotGroup, nil)
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, response.ErrCodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	default:
		return err
	}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, name)
	}
	return id, nil
}
