package routes

import (
	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	appSess := a.AppSessions()
	authCtl := controllers.NewAuthController(a.Repo, appSess, a.Config)
	userCtl := controllers.NewUserController(a.Repo, appSess)
	invCtl := controllers.NewInventoryController(a.Repo)
	borrowCtl := controllers.NewBorrowingController(a.Repo)
	dashCtl := controllers.NewDashboardController(a.Repo)
	notifCtl := controllers.NewNotificationController(a.Repo)
	settingsCtl := controllers.NewSettingsController(a.Repo)

	authMW := app.AuthRequired(appSess)
	staffMW := app.RequireStaff()
	superMW := app.RequireSuperadmin()

	// ------------------------------
	// Auth (public)
	// ------------------------------
	r.POST("/api/login", authCtl.Login)
	r.POST("/api/auth/first-login", authCtl.FirstLogin)
	r.POST("/api/logout", authCtl.Logout)

	// ------------------------------
	// Inventory
	// ------------------------------
	inv := r.Group("/api/inventory", authMW)
	{
		inv.GET("", invCtl.List)
		inv.GET("/references", invCtl.References)
		inv.GET("/types-list", invCtl.TypesList)
		inv.GET("/items", invCtl.ConsumableItems)

		inv.POST("", staffMW, invCtl.Create)
		inv.PUT("/:id", staffMW, invCtl.Update)
		inv.DELETE("/:id", staffMW, invCtl.Delete)

		inv.PUT("/items/:id/threshold", superMW, invCtl.UpdateThreshold)
	}

	// ------------------------------
	// Borrowing
	// ------------------------------
	borrowing := r.Group("/api/borrowing", authMW)
	{
		borrowing.GET("", borrowCtl.List)
		borrowing.POST("", borrowCtl.Create)

		borrowing.PUT("/approve/:id", staffMW, borrowCtl.Approve)
		borrowing.PUT("/reject/:id", staffMW, borrowCtl.Reject)
		borrowing.PUT("/return/:id", staffMW, borrowCtl.Return)
	}

	// ------------------------------
	// Dashboard & history
	// ------------------------------
	dash := r.Group("/api/dashboard", authMW)
	{
		dash.GET("/stats", dashCtl.Stats)
		dash.GET("/low-stock", dashCtl.LowStock)
		dash.GET("/activity/:userId", dashCtl.RecentActivity)
	}
	r.GET("/api/history/:userId", authMW, dashCtl.History)

	// ------------------------------
	// Notifications
	// ------------------------------
	notif := r.Group("/api/notifications", authMW)
	{
		notif.GET("", notifCtl.List)
		notif.GET("/all", notifCtl.ListAll)
		notif.PUT("/mark-all-read", notifCtl.MarkAllRead)
		notif.PUT("/:id/read", notifCtl.MarkRead)
	}

	// ------------------------------
	// User management (Superadmin)
	// ------------------------------
	users := r.Group("/api/users", authMW, superMW)
	{
		users.GET("", userCtl.ListUsers)
		users.POST("", userCtl.CreateUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	// ------------------------------
	// Settings: dropdown options (Superadmin)
	// ------------------------------
	settings := r.Group("/api/settings", authMW, superMW)
	{
		settings.POST("/committees", settingsCtl.CreateCommittee)
		settings.DELETE("/committees/:id", settingsCtl.DeleteCommittee)
		settings.POST("/units", settingsCtl.CreateUnit)
		settings.DELETE("/units/:id", settingsCtl.DeleteUnit)
		settings.POST("/types", settingsCtl.CreateType)
		settings.DELETE("/types/:id", settingsCtl.DeleteType)
	}
}
