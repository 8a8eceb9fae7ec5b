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

// GetScoreTable returns the scoring table for an age group.
// GET /api/ippt/scoring/:age_group
func GetScoreTable(ctx context.Context, c *app.RequestContext) {
	result, err := service.Ippt().ScoreTable(ctx, c.Param("age_group"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// CreateAttempt records a manual IPPT attempt. Commanders may record for
// others; soldiers only for themselves.
// POST /api/ippt/attempts
func CreateAttempt(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}
	role, _ := middleware.GetUserRole(ctx, c)

	var req dto.CreateAttemptRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Ippt().CreateAttempt(ctx, userID, role, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ListAttempts returns attempt history. Soldiers see their own; commanders
// may pass user_id.
// GET /api/ippt/attempts
func ListAttempts(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}
	role, _ := middleware.GetUserRole(ctx, c)

	target := userID
	if v := c.Query("user_id"); v != "" && v != userID {
		if role != string(model.RoleCommander) && role != string(model.RoleAdmin) {
			response.Error(ctx, c, errors.Forbidden)
			return
		}
		target = v
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := service.Ippt().ListAttempts(ctx, target, limit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, items)
}

// CreateSession uploads a scanned scoresheet as a draft session. Commander
// and admin only.
// POST /api/ippt/sessions
func CreateSession(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.CreateSessionRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Ippt().CreateSession(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ListSessions returns the caller's upload history.
// GET /api/ippt/sessions
func ListSessions(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	items, err := service.Ippt().ListSessions(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, items)
}

// GetSession returns one session with its draft rows.
// GET /api/ippt/sessions/:id
func GetSession(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	result, err := service.Ippt().GetSession(ctx, userID, c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ConfirmSession turns a draft session's resolved rows into attempts.
// POST /api/ippt/sessions/:id/confirm
func ConfirmSession(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	result, err := service.Ippt().ConfirmSession(ctx, userID, c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetIpptStats aggregates a sub-unit's attempts. Commander and admin only.
// GET /api/ippt/commander-stats
func GetIpptStats(ctx context.Context, c *app.RequestContext) {
	var q dto.CommanderStatsQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Ippt().Stats(ctx, &q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
