package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platformsec/identity-service/internal/core/ports"
)

// RoleHandler handles HTTP requests for role administration.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// Create adds a role to the catalogue.
//
// @Summary      Create a role
// @Tags         role
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role name"
// @Success      200   {object}  createdResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/role/create [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
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

	id, err := h.service.Create(c.Request().Context(), actor, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createdResponse{ID: id})
}

// GetAll lists every role.
//
// @Summary      List roles
// @Tags         role
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Role
// @Router       /api/role/getroles [get]
func (h *RoleHandler) GetAll(c echo.Context) error {
	roles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// GetByID fetches one role.
//
// @Summary      Get role by id
// @Tags         role
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  domain.Role
// @Failure      404  {object}  errorResponse
// @Router       /api/role/getrolebyid/{id} [get]
func (h *RoleHandler) GetByID(c echo.Context) error {
	role, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Delete removes a role. Identities keep the role name; nothing cascades.
//
// @Summary      Delete a role
// @Tags         role
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  affectedResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/role/deleterole/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	count, err := h.service.Delete(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, affectedResponse{Affected: count})
}

// Edit renames a role. The path id must equal the payload id or the request
// fails with 400 before any mutation.
//
// @Summary      Edit a role
// @Tags         role
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Role id"
// @Param        body  body      editRoleRequest  true  "Role id and new name"
// @Success      200   {object}  affectedResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/role/editrole/{id} [put]
func (h *RoleHandler) Edit(c echo.Context) error {
	var req editRoleRequest
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

	count, err := h.service.Rename(c.Request().Context(), actor, c.Param("id"), ports.RoleUpdate{
		ID:   req.ID,
		Name: req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, affectedResponse{Affected: count})
}
