package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/response"
	"github.com/aperturelabs/alms/internal/service"
)

type EmployeeHandler struct {
	employees *service.EmployeeService
	logger    *slog.Logger
}

func NewEmployeeHandler(employees *service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		logger:    logger,
	}
}

type LoginInput struct {
	Username string `json:"username" example:"jdoe"`
	Password string `json:"password" example:"correct-horse"`
}

type SetColorInput struct {
	Color *int `json:"color" example:"7"`
}

type UsernameTakenResponse struct {
	Taken bool `json:"taken"`
}

// Register mounts the employee routes. Rate limited routes get authLimit,
// protected routes get requireAuth.
func (h *EmployeeHandler) Register(app *fiber.App, requireAuth, authLimit fiber.Handler) {
	app.Post("/login", authLimit, h.Login)
	app.Post("/register", authLimit, h.RegisterEmployee)
	app.Get("/is-username-taken/:username", h.IsUsernameTaken)

	app.Post("/logout", requireAuth, h.Logout)
	app.Get("/get-all-employees", requireAuth, h.ListAll)
	app.Get("/get-active-employees", requireAuth, h.ListActive)
	app.Post("/set-employee-color", requireAuth, h.SetColor)
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Verifies the password and issues a session token, replacing any previous session of the employee
//	@Tags			employees
//	@Accept			json
//	@Produce		json
//	@Param			input	body		docs.LoginInput	true	"Credentials"
//	@Success		200		{object}	docs.LoginResult
//	@Failure		400		{object}	docs.ErrorInfo
//	@Failure		401		{object}	docs.ErrorInfo
//	@Failure		500		{object}	docs.ErrorInfo
//	@Router			/login [post]
func (h *EmployeeHandler) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadJSON(c)
	}

	result, err := h.employees.Login(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return HandleDomainError(c, err)
	}

	h.logger.Info("employee logged in", "employee_id", result.Employee.ID)
	return response.OK(c, result)
}

// RegisterEmployee godoc
//
//	@Summary		Register an employee
//	@Tags			employees
//	@Accept			json
//	@Produce		json
//	@Param			input	body		docs.RegisterInput	true	"New employee"
//	@Success		201		{object}	docs.Employee
//	@Failure		400		{object}	docs.ErrorInfo
//	@Router			/register [post]
func (h *EmployeeHandler) RegisterEmployee(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadJSON(c)
	}

	employee, err := h.employees.Register(c.UserContext(), input)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return response.BadRequestWithDetails(c, response.ErrCodeUsernameTaken, MsgUsernameTaken, nil)
	}
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, employee.ToResponse())
}

// IsUsernameTaken godoc
//
//	@Summary	Check whether a username is taken
//	@Tags		employees
//	@Produce	json
//	@Param		username	path		string	true	"Username"
//	@Success	200			{object}	docs.UsernameTaken
//	@Router		/is-username-taken/{username} [get]
func (h *EmployeeHandler) IsUsernameTaken(c *fiber.Ctx) error {
	taken, err := h.employees.IsUsernameTaken(c.UserContext(), c.Params("username"))
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, UsernameTakenResponse{Taken: taken})
}

// Logout godoc
//
//	@Summary	Revoke the presented session token
//	@Tags		employees
//	@Produce	json
//	@Security	SessionToken
//	@Success	200	{object}	docs.LogoutResult
//	@Failure	401	{object}	docs.ErrorInfo
//	@Router		/logout [post]
func (h *EmployeeHandler) Logout(c *fiber.Ctx) error {
	if err := h.employees.Logout(c.UserContext(), GetSessionTokenFromContext(c)); err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, fiber.Map{"message": MsgLoggedOut})
}

// ListAll godoc
//
//	@Summary	List every employee
//	@Tags		employees
//	@Produce	json
//	@Security	SessionToken
//	@Success	200	{array}		docs.Employee
//	@Failure	401	{object}	docs.ErrorInfo
//	@Router		/get-all-employees [get]
func (h *EmployeeHandler) ListAll(c *fiber.Ctx) error {
	employees, err := h.employees.ListAll(c.UserContext())
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, employees)
}

// ListActive godoc
//
//	@Summary	List employees with a live session
//	@Tags		employees
//	@Produce	json
//	@Security	SessionToken
//	@Success	200	{array}		docs.Employee
//	@Failure	401	{object}	docs.ErrorInfo
//	@Router		/get-active-employees [get]
func (h *EmployeeHandler) ListActive(c *fiber.Ctx) error {
	employees, err := h.employees.ListActive(c.UserContext())
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, employees)
}

// SetColor godoc
//
//	@Summary	Set the caller's display colour
//	@Tags		employees
//	@Accept		json
//	@Produce	json
//	@Security	SessionToken
//	@Param		input	body		docs.SetColorInput	true	"Colour index 0..15"
//	@Success	200		{object}	docs.Employee
//	@Failure	400		{object}	docs.ErrorInfo
//	@Router		/set-employee-color [post]
func (h *EmployeeHandler) SetColor(c *fiber.Ctx) error {
	var input SetColorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadJSON(c)
	}
	if input.Color == nil {
		return response.BadRequest(c, MsgInvalidColor)
	}

	employee := GetEmployeeFromContext(c)
	if err := h.employees.SetColor(c.UserContext(), employee.ID, *input.Color); err != nil {
		return HandleDomainError(c, err)
	}

	updated := *employee
	updated.Color = *input.Color
	return response.OK(c, updated.ToResponse())
}

const (
	employeeContextKey     = "employee"
	sessionTokenContextKey = "sessionToken"
)

func SetEmployeeInContext(c *fiber.Ctx, employee *domain.Employee, token string) {
	c.Locals(employeeContextKey, employee)
	c.Locals(sessionTokenContextKey, token)
}

func GetEmployeeFromContext(c *fiber.Ctx) *domain.Employee {
	employee, ok := c.Locals(employeeContextKey).(*domain.Employee)
	if !ok {
		return nil
	}
	return employee
}

func GetSessionTokenFromContext(c *fiber.Ctx) string {
	token, _ := c.Locals(sessionTokenContextKey).(string)
	return token
}
