package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"FormUp/internal/handler"
	"FormUp/internal/middleware"
	"FormUp/internal/model"
)

func Register(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())
	h.Use(middleware.GeneralRateLimitMiddleware())
	if csrf := middleware.CSRFMiddleware(); csrf != nil {
		h.Use(csrf...)
	}

	api := h.Group("/api")

	commanderUp := middleware.RequireRoles(string(model.RoleCommander), string(model.RoleAdmin))
	adminOnly := middleware.RequireRoles(string(model.RoleAdmin))

	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.AuthRateLimitMiddleware(), handler.Login)
		auth.POST("/token/refresh", middleware.AuthRateLimitMiddleware(), handler.RefreshToken)

		me := auth.Group("", middleware.AuthMiddleware())
		{
			me.GET("/me", handler.Me)
			me.POST("/logout", handler.Logout)
			me.POST("/change-password", handler.ChangePassword)
		}
	}

	adminUsers := api.Group("/admin/users", middleware.AuthMiddleware(), adminOnly)
	{
		adminUsers.GET("", handler.ListUsers)
		adminUsers.GET("/:id", handler.GetUser)
		adminUsers.POST("", handler.CreateUser)
		adminUsers.PATCH("/:id", handler.UpdateUser)
		adminUsers.DELETE("/:id", handler.DeleteUser)
		adminUsers.POST("/:id/credits", handler.GrantCredits)
	}

	users := api.Group("/users", middleware.AuthMiddleware())
	{
		users.GET("/:id/eligibility", handler.GetEligibility)
		users.PUT("/:id/eligibility", commanderUp, handler.UpsertEligibility)
	}

	msps := api.Group("/msps", middleware.AuthMiddleware())
	{
		msps.GET("", handler.ListMSPs)
		msps.POST("", adminOnly, handler.CreateMSP)
	}

	qualifications := api.Group("/qualifications", middleware.AuthMiddleware())
	{
		qualifications.GET("", handler.ListQualifications)
		qualifications.POST("", commanderUp, handler.CreateQualification)
		qualifications.DELETE("/:id", adminOnly, handler.DeleteQualification)
	}

	driveLogs := api.Group("/drive-logs", middleware.AuthMiddleware())
	{
		driveLogs.GET("", handler.ListDriveLogs)
		driveLogs.POST("", handler.CreateDriveLog)
		driveLogs.DELETE("/:id", handler.DeleteDriveLog)
	}

	api.POST("/currency-drives/scan", middleware.AuthMiddleware(), handler.ScanDrive)

	ippt := api.Group("/ippt", middleware.AuthMiddleware())
	{
		ippt.GET("/scoring/:age_group", handler.GetScoreTable)
		ippt.GET("/attempts", handler.ListAttempts)
		ippt.POST("/attempts", handler.CreateAttempt)
		ippt.GET("/commander-stats", commanderUp, handler.GetIpptStats)

		sessions := ippt.Group("/sessions", commanderUp)
		{
			sessions.GET("", handler.ListSessions)
			sessions.POST("", handler.CreateSession)
			sessions.GET("/:id", handler.GetSession)
			sessions.POST("/:id/confirm", handler.ConfirmSession)
		}
	}

	bookings := api.Group("/bookings", middleware.AuthMiddleware())
	{
		bookings.GET("", handler.ListBookings)
		bookings.POST("", middleware.BookingRateLimitMiddleware(), handler.CreateBooking)
		bookings.POST("/:id/cancel", handler.CancelBooking)
		bookings.GET("/capacity", handler.GetCapacity)
		bookings.GET("/calendar-events", handler.GetCalendarEvents)
		bookings.GET("/credits", handler.GetMyCredits)
	}
}
