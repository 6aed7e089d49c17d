// Package adminupdate реализует HTTP-обработчик обновления произвольного
// пользователя по id. Доступ ограничен ролью superadmin — проверка объявлена
// в таблице маршрутов. Разрешённый список полей тот же, что и при обновлении
// собственного профиля; существование записи проверяется до применения изменений.
package adminupdate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
	userservice "github.com/magabrotheeeer/account-service/internal/services/user"
)

const invalidUpdatesMsg = "Invalid updates!"

// Service описывает интерфейс бизнес-логики обновления пользователя по id.
type Service interface {
	UpdateByUID(ctx context.Context, userUID string, upd *models.Update) (*models.User, error)
}

// Handler обрабатывает запросы на обновление пользователя по id.
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
// @Summary Обновление пользователя по id
// @Description Применяет частичное обновление к записи пользователя. Только для superadmin.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.adminupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

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

	updated, err := h.service.UpdateByUID(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, userservice.ErrNotFound) {
			log.Info("user not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update user", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("user updated by admin", slog.String("uid", updated.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": updated,
	}))
}
