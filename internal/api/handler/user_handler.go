package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/squartrbnb/user-service/internal/api/apierror"
	"github.com/squartrbnb/user-service/internal/api/metrics"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user accounts. Every failure is
// returned to echo and rendered by the central error handler.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User to create"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  apierror.ErrorPayload
// @Failure      404   {object}  apierror.ErrorPayload
// @Failure      409   {object}  apierror.ErrorPayload
// @Failure      429   {object}  apierror.ErrorPayload
// @Failure      500   {object}  apierror.ErrorPayload
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), toCreateInput(&req))
	if err != nil {
		return err
	}

	roleName := ""
	if view.Role != nil {
		roleName = view.Role.Name
	}
	metrics.UsersCreatedTotal.WithLabelValues(roleName).Inc()

	c.Response().Header().Set(echo.HeaderLocation, "/api/users/"+strconv.FormatInt(view.ID, 10))
	return c.JSON(http.StatusCreated, toUserResponse(view))
}

// List handles GET /api/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Failure      500  {object}  apierror.ErrorPayload
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(views))
}

// GetByID handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  apierror.ErrorPayload
// @Failure      404  {object}  apierror.ErrorPayload
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// GetByEmail handles GET /api/users/email/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  userResponse
// @Failure      400    {object}  apierror.ErrorPayload
// @Failure      404    {object}  apierror.ErrorPayload
// @Router       /api/users/email/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	email, err := pathString(c, "email")
	if err != nil {
		return err
	}

	view, err := h.service.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// GetByUsername handles GET /api/users/username/:username.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      400       {object}  apierror.ErrorPayload
// @Failure      404       {object}  apierror.ErrorPayload
// @Router       /api/users/username/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	username, err := pathString(c, "username")
	if err != nil {
		return err
	}

	view, err := h.service.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// Update handles PUT /api/users/:id. Only the supplied fields change.
//
// @Summary      Partially update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  apierror.ErrorPayload
// @Failure      404   {object}  apierror.ErrorPayload
// @Failure      409   {object}  apierror.ErrorPayload
// @Failure      429   {object}  apierror.ErrorPayload
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	req.dropEmptyPassword()
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), id, toUpdateInput(&req))
	if err != nil {
		return err
	}

	metrics.UsersUpdatedTotal.Inc()
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id   path  int  true  "User id"
// @Success      204
// @Failure      400  {object}  apierror.ErrorPayload
// @Failure      404  {object}  apierror.ErrorPayload
// @Failure      429  {object}  apierror.ErrorPayload
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// bindAndValidate decodes the JSON body into req and runs structural validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := bindBody(c, req); err != nil {
		return err
	}
	return c.Validate(req)
}

func bindBody(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return &apierror.MalformedBodyError{Err: err}
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	if raw == "" {
		return 0, &apierror.MissingParameterError{Name: "id"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &apierror.TypeMismatchError{Name: "id", Value: raw, Expected: "integer"}
	}
	return id, nil
}

// pathString returns the unescaped path parameter name. Echo routes on the raw
// path, so "john%40x.com" arrives escaped.
func pathString(c echo.Context, name string) (string, error) {
	raw := c.Param(name)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", &apierror.TypeMismatchError{Name: name, Value: raw, Expected: "string"}
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", &apierror.MissingParameterError{Name: name}
	}
	return v, nil
}
