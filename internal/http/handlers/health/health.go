// Package health реализует корневой обработчик проверки живости сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/trading-signals/internal/lib/sl"
	"github.com/magabrotheeeer/trading-signals/internal/storage/repository"
)

// Handler отвечает простым текстом, подтверждая доступность базы данных.
type Handler struct {
	log *slog.Logger
	db  *repository.Storage
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db *repository.Storage) *Handler {
	return &Handler{log: log, db: db}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if err := repository.CheckDatabaseReady(h.db); err != nil {
		h.log.Error("database is not ready", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Database is not available"))
		return
	}
	_, _ = w.Write([]byte("Server is running and Database is connected!"))
}
