package server

import (
	"time"

	"station-api/internal/auth"
	"station-api/internal/middleware"
	"station-api/internal/passwordreset"
	"station-api/internal/permission"
	"station-api/internal/permissions"
	"station-api/internal/request"
	"station-api/internal/role"
	"station-api/internal/show"
	"station-api/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Station API is running",
		})
	})

	api := app.Group("/api/v1")

	// ==========================================
	// AUTH
	// ==========================================
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}), auth.LoginHandler)
	api.Post("/logout", auth.TokenProtected(), auth.LogoutHandler)

	// ==========================================
	// PASSWORD RESET
	// ==========================================
	resetGroup := api.Group("/reset_password", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
	}))
	resetGroup.Post("/", passwordreset.SendLinkHandler)
	resetGroup.Post("/:token", passwordreset.ResetHandler)

	// ==========================================
	// USER MANAGEMENT
	// ==========================================
	userGroup := api.Group("/users")
	userGroup.Use(auth.TokenProtected())
	userGroup.Get("/",
		middleware.PermissionProtected(permissions.CanListUsers),
		user.ListUsersHandler)
	userGroup.Post("/",
		middleware.PermissionProtected(permissions.CanCreateUsers),
		user.CreateUserHandler)
	userGroup.Get("/:id",
		middleware.PermissionProtected(permissions.CanShowUsers, permissions.CanListUsers),
		user.GetUserHandler)
	userGroup.Put("/:id",
		middleware.PermissionProtected(permissions.CanUpdateUsers, permissions.CanUpdateUsersSelf),
		user.UpdateUserHandler)
	userGroup.Delete("/:id",
		middleware.PermissionProtected(permissions.CanDeleteUsers),
		user.DeleteUserHandler)

	// ==========================================
	// ROLES & PERMISSIONS
	// ==========================================
	roleGroup := api.Group("/roles")
	roleGroup.Use(auth.TokenProtected())
	roleGroup.Get("/",
		middleware.PermissionProtected(permissions.CanShowRoles),
		role.ListRolesHandler)
	roleGroup.Post("/",
		middleware.PermissionProtected(permissions.CanCreateRoles),
		role.CreateRoleHandler)
	roleGroup.Get("/:id",
		middleware.PermissionProtected(permissions.CanShowRoles),
		role.GetRoleHandler)
	roleGroup.Put("/:id",
		middleware.PermissionProtected(permissions.CanUpdateRoles),
		role.UpdateRoleHandler)
	roleGroup.Delete("/:id",
		middleware.PermissionProtected(permissions.CanDeleteRoles),
		role.DeleteRoleHandler)

	permGroup := api.Group("/permissions")
	permGroup.Use(auth.TokenProtected())
	permGroup.Get("/",
		middleware.PermissionProtected(permissions.CanShowRoles),
		permission.ListPermissionsHandler)
	permGroup.Get("/:id",
		middleware.PermissionProtected(permissions.CanShowRoles),
		permission.GetPermissionHandler)

	// ==========================================
	// WISH REQUESTS
	// ==========================================
	requestGroup := api.Group("/requests")
	requestGroup.Post("/", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
	}), request.CreateRequestHandler)
	requestGroup.Get("/",
		auth.TokenProtected(),
		middleware.PermissionProtected(permissions.CanViewRequests),
		request.ListRequestsHandler)
	requestGroup.Get("/:id",
		auth.TokenProtected(),
		middleware.PermissionProtected(permissions.CanViewRequests),
		request.GetRequestHandler)
	requestGroup.Delete("/:id",
		auth.TokenProtected(),
		middleware.PermissionProtected(permissions.CanDeleteRequests),
		request.DeleteRequestHandler)

	// ==========================================
	// SHOWS
	// ==========================================
	showGroup := api.Group("/shows")
	showGroup.Get("/", auth.OptionalToken(), show.ListShowsHandler)
	showGroup.Get("/:id", auth.OptionalToken(), show.GetShowHandler)
	showGroup.Post("/",
		auth.TokenProtected(),
		middleware.PermissionProtected(permissions.CanCreateShows, permissions.CanCreateShowsOthers),
		show.CreateShowHandler)
	showGroup.Put("/:id",
		auth.TokenProtected(),
		middleware.PermissionProtected(permissions.CanUpdateShows, permissions.CanUpdateShowsOthers),
		show.UpdateShowHandler)
	showGroup.Delete("/:id",
		auth.TokenProtected(),
		middleware.PermissionProtected(permissions.CanDeleteShows, permissions.CanDeleteShowsOthers),
		show.DeleteShowHandler)
	showGroup.Post("/:id/lock",
		auth.TokenProtected(),
		middleware.PermissionProtected(permissions.CanUpdateShows, permissions.CanUpdateShowsOthers),
		show.LockShowHandler)
	showGroup.Delete("/:id/lock",
		auth.TokenProtected(),
		middleware.PermissionProtected(permissions.CanUpdateShows, permissions.CanUpdateShowsOthers),
		show.UnlockShowHandler)
}
