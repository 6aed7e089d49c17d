// Package update реализует HTTP-обработчик частичного обновления собственного профиля.
//
// Каждый ключ тела запроса проверяется по разрешённому списку
// {name, phone, username, email, password}; один неизвестный ключ отклоняет
// обновление целиком, ни одно поле при этом не применяется.
package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// invalidUpdatesMsg — ответ на ключ вне разрешённого списка.
const invalidUpdatesMsg = "Invalid updates!"

// Service описывает интерфейс бизнес-логики применения обновления.
type Service interface {
	Apply(ctx context.Context, user *models.User, upd *models.Update) (*models.User, error)
}

// Handler обрабатывает запросы на обновление собственного профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновление собственного профиля
// @Description Применяет частичное обновление к записи аутентифицированного пользователя.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /users/me [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing from request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	upd, err := models.ParseUpdate(body)
	if err != nil {
		if errors.Is(err, models.ErrUnknownField) {
			log.Error("update rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(invalidUpdatesMsg))
			return
		}
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	updated, err := h.service.Apply(r.Context(), user, upd)
	if err != nil {
		log.Error("failed to update user", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("user updated", slog.String("uid", updated.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": updated,
	}))
}
