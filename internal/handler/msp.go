package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FormUp/internal/model/dto"
	"FormUp/internal/service"
	"FormUp/pkg/response"
)

// CreateMSP registers a servicing point. Admin only.
// POST /api/msps
func CreateMSP(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateMSPRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.MSP().Create(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ListMSPs returns all servicing points.
// GET /api/msps
func ListMSPs(ctx context.Context, c *app.RequestContext) {
	items, err := service.MSP().List(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, items)
}
