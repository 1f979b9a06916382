package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/metrics"
	"github.com/vladislavdragonenkov/bakery/internal/service/bakery"
	httpsvc "github.com/vladislavdragonenkov/bakery/internal/service/http"
)

// newServices связывает репозитории с сервисами ресурсов.
func newServices(storage *storageDependencies, events domain.EventPublisher, m *metrics.Metrics, logger *log.Entry) httpsvc.Services {
	serviceLogger := logger.WithField("layer", "service")
	return httpsvc.Services{
		Clients:  bakery.NewClientService(storage.clients, events, m, serviceLogger),
		Products: bakery.NewProductService(storage.products, events, m, serviceLogger),
		Orders:   bakery.NewOrderService(storage.orders, events, m, serviceLogger),
	}
}
