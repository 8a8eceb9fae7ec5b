package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FormUp/internal/middleware"
	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/service"
	"FormUp/pkg/errors"
	"FormUp/pkg/response"
)

// CreateQualification records a vehicle qualification. Commander and admin only.
// POST /api/qualifications
func CreateQualification(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateQualificationRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Qualification().Create(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ListQualifications lists qualifications with derived currency. Soldiers see
// their own; commanders may scope by user_id or msp_id.
// GET /api/qualifications
func ListQualifications(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}
	role, _ := middleware.GetUserRole(ctx, c)

	var q dto.QualificationListQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	privileged := role == string(model.RoleCommander) || role == string(model.RoleAdmin)

	switch {
	case q.MSPID > 0:
		if !privileged {
			response.Error(ctx, c, errors.Forbidden)
			return
		}
		items, err := service.Qualification().ListForMSP(ctx, q.MSPID, q.Status)
		if err != nil {
			response.Error(ctx, c, err)
			return
		}
		response.Success(ctx, c, items)
	case q.UserID != "" && q.UserID != userID:
		if !privileged {
			response.Error(ctx, c, errors.Forbidden)
			return
		}
		fallthrough
	default:
		target := userID
		if q.UserID != "" {
			target = q.UserID
		}
		items, err := service.Qualification().ListForUser(ctx, target)
		if err != nil {
			response.Error(ctx, c, err)
			return
		}
		response.Success(ctx, c, items)
	}
}

// DeleteQualification removes a qualification. Admin only.
// DELETE /api/qualifications/:id
func DeleteQualification(ctx context.Context, c *app.RequestContext) {
	if err := service.Qualification().Delete(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// GetEligibility returns a user's currency-tracking override. Soldiers may
// read their own; commanders and admins anyone's.
// GET /api/users/:id/eligibility
func GetEligibility(ctx context.Context, c *app.RequestContext) {
	callerID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}
	role, _ := middleware.GetUserRole(ctx, c)

	target := c.Param("id")
	privileged := role == string(model.RoleCommander) || role == string(model.RoleAdmin)
	if target != callerID && !privileged {
		response.Error(ctx, c, errors.Forbidden)
		return
	}

	result, err := service.Eligibility().Get(ctx, target)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpsertEligibility sets or clears a user's override. Commander and admin only.
// PUT /api/users/:id/eligibility
func UpsertEligibility(ctx context.Context, c *app.RequestContext) {
	var req dto.UpsertEligibilityRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Eligibility().Upsert(ctx, c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
