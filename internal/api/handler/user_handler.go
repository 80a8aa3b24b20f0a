package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platformsec/identity-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user administration. Every route it
// serves sits behind the Auth and administrative RBAC middleware.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create provisions a new user.
//
// @Summary      Create a user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      200   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/user/create [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := h.service.CreateUser(c.Request().Context(), actor, ports.NewUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, createdResponse{ID: id})
}

// GetAll lists user summaries.
//
// @Summary      List users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.UserSummary
// @Router       /api/user/getall [get]
func (h *UserHandler) GetAll(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetAllDetails lists full identity records including roles.
//
// @Summary      List user details
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Identity
// @Router       /api/user/getalluserdetails [get]
func (h *UserHandler) GetAllDetails(c echo.Context) error {
	users, err := h.service.ListUserDetails(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Delete removes a user by id.
//
// @Summary      Delete a user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  affectedResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/user/delete/{userId} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	count, err := h.service.DeleteUser(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, affectedResponse{Affected: count})
}

// GetDetails fetches one user by id.
//
// @Summary      Get user details
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  domain.Identity
// @Failure      404     {object}  errorResponse
// @Router       /api/user/getuserdetails/{userId} [get]
func (h *UserHandler) GetDetails(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetDetailsByUsername fetches one user by username.
//
// @Summary      Get user details by username
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        userName  path      string  true  "Username"
// @Success      200       {object}  domain.Identity
// @Failure      404       {object}  errorResponse
// @Router       /api/user/getuserdetailsbyusername/{userName} [get]
func (h *UserHandler) GetDetailsByUsername(c echo.Context) error {
	user, err := h.service.GetUserByUsername(c.Request().Context(), c.Param("userName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// AssignRoles replaces a user's role set.
//
// @Summary      Assign roles
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignRolesRequest  true  "Username and replacement role set"
// @Success      200   {object}  affectedResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/user/assignroles [post]
func (h *UserHandler) AssignRoles(c echo.Context) error {
	return h.setRoles(c)
}

// EditRoles replaces a user's role set. Same semantics as AssignRoles; both
// verbs exist for API compatibility.
//
// @Summary      Edit user roles
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignRolesRequest  true  "Username and replacement role set"
// @Success      200   {object}  affectedResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/user/edituserroles [put]
func (h *UserHandler) EditRoles(c echo.Context) error {
	return h.setRoles(c)
}

func (h *UserHandler) setRoles(c echo.Context) error {
	var req assignRolesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	count, err := h.service.SetRoles(c.Request().Context(), actor, req.Username, req.Roles)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, affectedResponse{Affected: count})
}

// EditProfile updates a user's profile. The path id must equal the payload
// id or the request fails with 400 before any mutation.
//
// @Summary      Edit user profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "User id"
// @Param        body  body      editUserProfileRequest  true  "Profile fields"
// @Success      200   {object}  affectedResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/user/edituserprofile/{id} [put]
func (h *UserHandler) EditProfile(c echo.Context) error {
	var req editUserProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	count, err := h.service.UpdateProfile(c.Request().Context(), actor, c.Param("id"), ports.ProfileUpdate{
		ID:       req.ID,
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, affectedResponse{Affected: count})
}
