package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/signworks/go-orderportal/app/configs"
	"github.com/signworks/go-orderportal/app/handlers"
	adminhandlers "github.com/signworks/go-orderportal/app/handlers/admin"
	"github.com/signworks/go-orderportal/app/middlewares"
	"github.com/signworks/go-orderportal/app/repositories"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/signworks/go-orderportal/app/utils/sessions"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services, and handlers and returns the
// CSRF-protected HTTP handler.
func NewRouter(db *gorm.DB, env configs.ENV, keys *configs.SessionKeys) http.Handler {
	rnd := render.New()
	validate := validator.New()

	secure := env.AppEnv == "production"
	sessionStore := sessions.NewCookieSessionStore(secure, keys.AuthKey, keys.EncKey)

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	addressRepo := repositories.NewGormAddressRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)

	mailer := services.NewMailer(services.MailerConfig{
		Host:      env.SMTPHost,
		Port:      env.SMTPPort,
		Username:  env.SMTPUsername,
		Password:  env.SMTPPassword,
		From:      env.SMTPFrom,
		StoreName: env.StoreName,
	})

	userService := services.NewUserService(db, userRepo, categoryRepo, validate)
	catalogService := services.NewCatalogService(categoryRepo, productRepo, userRepo, validate)
	orderService := services.NewOrderService(db, orderRepo, orderItemRepo, productRepo, mailer, validate, env.StoreName)
	addressService := services.NewAddressService(addressRepo, validate)
	dashboardService := services.NewDashboardService(productRepo, userRepo, orderRepo, categoryRepo)

	authHandler := handlers.NewAuthHandler(rnd, userService, sessionStore)
	productHandler := handlers.NewProductHandler(rnd, catalogService)
	orderHandler := handlers.NewOrderHandler(rnd, orderService)
	addressHandler := handlers.NewAddressHandler(rnd, addressService)

	categoryAdmin := adminhandlers.NewCategoryAdminHandler(rnd, catalogService)
	productAdmin := adminhandlers.NewProductAdminHandler(rnd, catalogService)
	userAdmin := adminhandlers.NewUserAdminHandler(rnd, userService)
	orderAdmin := adminhandlers.NewOrderAdminHandler(rnd, orderService)
	dashboard := adminhandlers.NewDashboardHandler(rnd, dashboardService)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/csrf", func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusOK, map[string]string{"token": csrf.Token(r)})
	}).Methods("GET")

	api.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(middlewares.AuthMiddleware(sessionStore, userRepo, rnd))

	authed.HandleFunc("/logout", authHandler.LogoutPostHandler).Methods("POST")
	authed.HandleFunc("/me", authHandler.MeGetHandler).Methods("GET")
	authed.HandleFunc("/me/password", authHandler.ChangePasswordPostHandler).Methods("POST")

	authed.HandleFunc("/products", productHandler.ListProductsHandler).Methods("GET")
	authed.HandleFunc("/categories", productHandler.ListCategoriesHandler).Methods("GET")

	authed.HandleFunc("/orders", orderHandler.PlaceOrderPostHandler).Methods("POST")
	authed.HandleFunc("/orders", orderHandler.ListOrdersGetHandler).Methods("GET")
	authed.HandleFunc("/orders/{id}", orderHandler.GetOrderHandler).Methods("GET")

	authed.HandleFunc("/addresses", addressHandler.ListAddressesHandler).Methods("GET")
	authed.HandleFunc("/addresses", addressHandler.CreateAddressHandler).Methods("POST")
	authed.HandleFunc("/addresses/{id}", addressHandler.DeleteAddressHandler).Methods("DELETE")

	adminRoutes := authed.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middlewares.AdminOnly(rnd))

	adminRoutes.HandleFunc("/dashboard", dashboard.StatsHandler).Methods("GET")

	adminRoutes.HandleFunc("/categories", categoryAdmin.CreateCategoryHandler).Methods("POST")
	adminRoutes.HandleFunc("/categories/{id}", categoryAdmin.UpdateCategoryHandler).Methods("PUT")
	adminRoutes.HandleFunc("/categories/{id}", categoryAdmin.DeleteCategoryHandler).Methods("DELETE")

	adminRoutes.HandleFunc("/products", productAdmin.CreateProductHandler).Methods("POST")
	adminRoutes.HandleFunc("/products/{id}", productAdmin.UpdateProductHandler).Methods("PUT")
	adminRoutes.HandleFunc("/products/{id}", productAdmin.DeleteProductHandler).Methods("DELETE")

	adminRoutes.HandleFunc("/users", userAdmin.ListUsersHandler).Methods("GET")
	adminRoutes.HandleFunc("/users", userAdmin.CreateUserHandler).Methods("POST")
	adminRoutes.HandleFunc("/users/{id}", userAdmin.DeleteUserHandler).Methods("DELETE")

	adminRoutes.HandleFunc("/orders/{id}/status", orderAdmin.UpdateStatusHandler).Methods("PUT")
	adminRoutes.HandleFunc("/orders", orderAdmin.ClearOrdersHandler).Methods("DELETE")

	csrfMiddleware := csrf.Protect(
		keys.CSRFKey,
		csrf.Secure(secure),
		csrf.Path("/"),
	)
	return csrfMiddleware(router)
}
