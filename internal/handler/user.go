package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FormUp/internal/middleware"
	"FormUp/internal/model/dto"
	"FormUp/internal/service"
	"FormUp/pkg/errors"
	"FormUp/pkg/response"
)

// CreateUser enrols a soldier or commander. Admin only.
// POST /api/admin/users
func CreateUser(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateUserRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.User().Create(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ListUsers returns a roster page. Admin only.
// GET /api/admin/users
func ListUsers(ctx context.Context, c *app.RequestContext) {
	var q dto.UserListQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	items, total, err := service.User().List(ctx, &q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, items, map[string]interface{}{"total": total})
}

// GetUser returns one roster entry.
// GET /api/admin/users/:id
func GetUser(ctx context.Context, c *app.RequestContext) {
	result, err := service.User().Get(ctx, c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateUser patches profile fields. Admin only.
// PATCH /api/admin/users/:id
func UpdateUser(ctx context.Context, c *app.RequestContext) {
	var req dto.UpdateUserRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.User().Update(ctx, c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// DeleteUser soft-deletes a user. Admin only.
// DELETE /api/admin/users/:id
func DeleteUser(ctx context.Context, c *app.RequestContext) {
	if err := service.User().Delete(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// GrantCredits tops up a user's booking credits. Admin only.
// POST /api/admin/users/:id/credits
func GrantCredits(ctx context.Context, c *app.RequestContext) {
	var req dto.GrantCreditsRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.User().GrantCredits(ctx, c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetMyCredits returns the caller's balance and recent ledger entries.
// GET /api/bookings/credits
func GetMyCredits(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	result, err := service.User().GetCredits(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
