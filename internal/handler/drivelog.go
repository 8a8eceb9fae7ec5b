package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"FormUp/internal/middleware"
	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/service"
	"FormUp/pkg/errors"
	"FormUp/pkg/response"
)

// CreateDriveLog records a manually entered drive for the caller.
// POST /api/drive-logs
func CreateDriveLog(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.CreateDriveLogRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.DriveLog().Create(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ScanDrive records a drive from a vehicle plate QR scan and returns the
// refreshed currency state.
// POST /api/currency-drives/scan
func ScanDrive(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.ScanDriveRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.DriveLog().Scan(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ListDriveLogs returns drive history. Soldiers see their own; commanders may
// pass user_id.
// GET /api/drive-logs
func ListDriveLogs(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}
	role, _ := middleware.GetUserRole(ctx, c)

	var q dto.DriveLogListQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	target := userID
	if q.UserID != "" && q.UserID != userID {
		if role != string(model.RoleCommander) && role != string(model.RoleAdmin) {
			response.Error(ctx, c, errors.Forbidden)
			return
		}
		target = q.UserID
	}

	items, err := service.DriveLog().List(ctx, target, &q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, items)
}

// DeleteDriveLog removes one of the caller's drives and walks the
// qualification's last drive date back.
// DELETE /api/drive-logs/:id
func DeleteDriveLog(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	logID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.DriveLogNotFound)
		return
	}

	if err := service.DriveLog().Delete(ctx, userID, logID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
