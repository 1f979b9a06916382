package httpsvc

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/dto"
	"github.com/vladislavdragonenkov/bakery/internal/metrics"
	"github.com/vladislavdragonenkov/bakery/internal/service/bakery"
)

// Services объединяет сервисы ресурсов, обслуживаемых HTTP API.
type Services struct {
	Clients  *bakery.ClientService
	Products *bakery.ProductService
	Orders   *bakery.OrderService
}

// Options управляет поведением обработчиков.
type Options struct {
	// StrictErrors включает ответ 500 при ошибках хранилища вместо значений по умолчанию.
	StrictErrors bool
	Metrics      *metrics.Metrics
	Logger       *log.Entry
}

// NewRouter собирает chi-роутер для /clients, /products и /orders.
func NewRouter(svc Services, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)

	mount(r, "/clients", opts.Metrics, &resourceHandler[dto.ClientDto]{
		name:    "client",
		title:   "Client",
		service: svc.Clients,
		strict:  opts.StrictErrors,
		logger:  logger.WithField("resource", "client"),
	})
	mount(r, "/products", opts.Metrics, &resourceHandler[dto.ProductDto]{
		name:    "product",
		title:   "Product",
		service: svc.Products,
		strict:  opts.StrictErrors,
		logger:  logger.WithField("resource", "product"),
	})
	mount(r, "/orders", opts.Metrics, &resourceHandler[dto.OrderDto]{
		name:    "order",
		title:   "Order",
		service: svc.Orders,
		strict:  opts.StrictErrors,
		logger:  logger.WithField("resource", "order"),
	})

	return r
}

// mount регистрирует маршруты ресурса. Путь со слешем на конце ведёт себя как коллекция.
// Идентификатором считается весь остаток пути, поэтому /clients/1/2 даёт 400, а не 404.
// POST и PUT остаток пути игнорируют.
func mount[D any](r chi.Router, prefix string, m *metrics.Metrics, h *resourceHandler[D]) {
	r.Route(prefix, func(r chi.Router) {
		r.Use(instrument(h.name, m))

		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Put("/", h.update)
		r.Delete("/", h.deleteWithoutID)

		r.Get("/*", h.get)
		r.Post("/*", h.create)
		r.Put("/*", h.update)
		r.Delete("/*", h.delete)
	})
}
