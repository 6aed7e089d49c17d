package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/response"
)

// RequireRole возвращает middleware, пропускающий запрос дальше только если
// роль аутентифицированного пользователя совпадает с требуемой. Текст отказа
// задаётся для каждого маршрута отдельно в таблице маршрутов.
//
// Отказ — это намеренно HTTP 400, а не 403: контракт унаследован от исходного API.
func RequireRole(role, denyMessage string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user missing from request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			if user.Role != role {
				log.Info("role check failed",
					slog.String("required", role),
					slog.String("actual", user.Role))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(denyMessage))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
