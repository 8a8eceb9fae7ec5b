package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"FormUp/pkg/errors"
)

// ErrorResponse is the unified error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse is the unified success envelope.
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(err error) int {
	def, ok := err.(errors.Definition)
	if !ok {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case "RATE_LIMITED":
		return http.StatusTooManyRequests // 429
	case "INVALID_CREDENTIALS", "UNAUTHORIZED":
		return http.StatusUnauthorized // 401
	case "FORBIDDEN", "USER_INELIGIBLE":
		return http.StatusForbidden // 403
	case "USER_NOT_FOUND", "MSP_NOT_FOUND", "QUALIFICATION_NOT_FOUND",
		"DRIVE_LOG_NOT_FOUND", "SCORE_TABLE_NOT_FOUND", "SESSION_NOT_FOUND",
		"BOOKING_NOT_FOUND":
		return http.StatusNotFound // 404
	case "SERVICE_NUMBER_TAKEN", "QUALIFICATION_EXISTS", "BOOKING_OVERLAP",
		"BOOKING_CAPACITY_FULL", "BOOKING_LOCK_CONTENTION":
		return http.StatusConflict // 409
	case "INVALID_REQUEST", "INVALID_USER_ID", "PASSWORD_MISMATCH",
		"PASSWORD_TOO_WEAK", "NOT_QUALIFIED", "INVALID_SCAN_PAYLOAD",
		"INVALID_STATION", "INVALID_RUN_TIME", "SESSION_NOT_DRAFT",
		"SESSION_EMPTY", "SCAN_EXTRACTION_FAILED", "ELIGIBILITY_INVALID",
		"BOOKING_INVALID_WINDOW", "BOOKING_ALREADY_ENDED", "BOOKING_NOT_ACTIVE",
		"CREDITS_INSUFFICIENT":
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

// Error writes the unified error envelope for err.
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func Created(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Data: data,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

// NoContent writes 204 No Content (DELETE and similar operations).
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
