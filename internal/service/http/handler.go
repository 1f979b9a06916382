package httpsvc

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const msgInternalError = "Internal server error"

// resourceService общий контракт сервисов клиентов, товаров и заказов.
type resourceService[D any] interface {
	Create(ctx context.Context, in D) (D, error)
	GetByID(ctx context.Context, id int64) (*D, error)
	GetAll(ctx context.Context) ([]D, error)
	Update(ctx context.Context, in D) error
	Delete(ctx context.Context, id int64) (*D, error)
}

type resourceHandler[D any] struct {
	name    string // client
	title   string // Client
	service resourceService[D]
	strict  bool
	logger  *log.Entry
}

func (h *resourceHandler[D]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetAll(r.Context())
	if err != nil {
		if h.storeFailure(w, r, err) {
			return
		}
		items = []D{}
	}
	if items == nil {
		items = []D{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *resourceHandler[D]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if h.storeFailure(w, r, err) {
			return
		}
		item = nil
	}
	// Отсутствующий ресурс отдаётся как 200 с телом null.
	writeJSON(w, http.StatusOK, item)
}

func (h *resourceHandler[D]) create(w http.ResponseWriter, r *http.Request) {
	var in D
	if !h.decode(w, r, &in) {
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil && h.storeFailure(w, r, err) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *resourceHandler[D]) update(w http.ResponseWriter, r *http.Request) {
	var in D
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.service.Update(r.Context(), in); err != nil && h.storeFailure(w, r, err) {
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *resourceHandler[D]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if h.storeFailure(w, r, err) {
			return
		}
		deleted = nil
	}
	if deleted == nil {
		writeText(w, http.StatusNotFound, h.title+" not found")
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func (h *resourceHandler[D]) deleteWithoutID(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusBadRequest)
}

func (h *resourceHandler[D]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "*"), 10, 64)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Invalid "+h.name+" ID")
		return 0, false
	}
	return id, true
}

func (h *resourceHandler[D]) decode(w http.ResponseWriter, r *http.Request, dst *D) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WithError(err).Debug("malformed request body")
		writeText(w, http.StatusBadRequest, "Invalid "+h.name+" payload")
		return false
	}
	return true
}

// storeFailure логирует ошибку хранилища. В строгом режиме отвечает 500 и возвращает true,
// иначе обработчик продолжает и отдаёт значение по умолчанию.
func (h *resourceHandler[D]) storeFailure(w http.ResponseWriter, r *http.Request, err error) bool {
	h.logger.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("store operation failed")

	if !h.strict {
		return false
	}
	writeText(w, http.StatusInternalServerError, msgInternalError)
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeText(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func writeText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
