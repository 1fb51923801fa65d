package http

import "github.com/labstack/echo/v4"

// Routes bundles what Register mounts under /api.
type Routes struct {
	Health       *Handler
	Auth         *AuthHandler
	Reference    *ReferenceHandler
	Membership   *MembershipHandler
	Applications *ApplicationHandler
	Members      *MemberHandler

	RequireAdmin echo.MiddlewareFunc
	// Idempotency guards the intake POST; nil disables it.
	Idempotency echo.MiddlewareFunc
	UploadDir   string
}

func Register(e *echo.Echo, r Routes) {
	api := e.Group("/api")
	api.GET("/health", r.Health.Health)

	api.POST("/auth/login", r.Auth.Login)
	api.GET("/auth/verify", r.Auth.Verify, r.RequireAdmin)

	pub := api.Group("/public")
	pub.GET("/states", r.Reference.States)
	pub.GET("/districts/:state_id", r.Reference.Districts)
	pub.GET("/members", r.Members.Directory)

	var applyMW []echo.MiddlewareFunc
	if r.Idempotency != nil {
		applyMW = append(applyMW, r.Idempotency)
	}
	api.POST("/membership/apply", r.Membership.Apply, applyMW...)
	api.GET("/membership/applications/:id", r.Membership.GetApplication)

	admin := api.Group("/admin", r.RequireAdmin)
	admin.GET("/applications", r.Applications.List)
	admin.GET("/applications/export", r.Applications.Export)
	admin.GET("/applications/:id", r.Applications.Get)
	admin.PUT("/applications/:id/status", r.Applications.UpdateStatus)
	admin.GET("/members", r.Members.List)
	admin.GET("/dashboard/stats", r.Members.Stats)

	if r.UploadDir != "" {
		api.Static("/uploads", r.UploadDir)
	}
}
