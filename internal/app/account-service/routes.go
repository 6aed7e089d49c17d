// Package accountservice собирает приложение: таблицу маршрутов, HTTP-сервер
// и его зависимости.
package accountservice

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/logoutall"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/user/adminupdate"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/user/removeself"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/models"
	authservice "github.com/magabrotheeeer/account-service/internal/services/auth"
	userservice "github.com/magabrotheeeer/account-service/internal/services/user"
)

// route — одна строка таблицы маршрутов: метод, шаблон пути, цепочка
// middleware (аутентификация и требование роли) и обработчик. Требования
// доступа объявлены на уровне таблицы, а не внутри обработчиков, чтобы
// контракт авторизации был виден и проверялся отдельно от бизнес-логики.
type route struct {
	method      string
	pattern     string
	middlewares []func(http.Handler) http.Handler
	handler     http.Handler
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, auth *authservice.AuthService, users *userservice.UserService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	authed := middlewarectx.AuthMiddleware(auth, logger)
	superadmin := func(denyMessage string) func(http.Handler) http.Handler {
		return middlewarectx.RequireRole(models.RoleSuperadmin, denyMessage, logger)
	}
	chain := func(mws ...func(http.Handler) http.Handler) []func(http.Handler) http.Handler {
		return mws
	}

	routes := []route{
		// Открытые конечные точки
		{http.MethodPost, "/user", nil, register.New(logger, auth)},
		{http.MethodPost, "/login", nil, login.New(logger, auth)},

		// Требуют аутентификации
		{http.MethodPost, "/users/logout", chain(authed), logout.New(logger, auth)},
		{http.MethodPost, "/users/logoutAll", chain(authed), logoutall.New(logger, auth)},
		{http.MethodGet, "/user", chain(authed), list.New(logger, users)},
		{http.MethodGet, "/users/me", chain(authed), me.New(logger)},
		{http.MethodPatch, "/users/me", chain(authed), update.New(logger, users)},

		// Требуют аутентификации и роли superadmin
		{http.MethodGet, "/users/{id}",
			chain(authed, superadmin("Only the god can see the user!")),
			read.New(logger, users)},
		{http.MethodPatch, "/users/{id}",
			chain(authed, superadmin("Only the god can update the user!")),
			adminupdate.New(logger, users)},
		{http.MethodDelete, "/users/{id}",
			chain(authed, superadmin("Only the god can delete the user!")),
			remove.New(logger, users)},
		{http.MethodDelete, "/users/me",
			chain(authed, superadmin("You cannot delete yourself!")),
			removeself.New(logger, users)},
	}

	for _, rt := range routes {
		r.With(rt.middlewares...).Method(rt.method, rt.pattern, rt.handler)
	}

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
