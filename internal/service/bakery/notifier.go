package bakery

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/metrics"
)

// notifier публикует события изменений. Ошибки публикации не влияют на результат запроса.
type notifier struct {
	events  domain.EventPublisher
	metrics *metrics.Metrics
	logger  *log.Entry
}

func newNotifier(events domain.EventPublisher, m *metrics.Metrics, logger *log.Entry) notifier {
	if events == nil {
		events = domain.NoopPublisher{}
	}
	return notifier{events: events, metrics: m, logger: logger}
}

func (n notifier) notify(ctx context.Context, resource domain.Resource, kind domain.ChangeKind, id int64, payload any) {
	ev := domain.ResourceEvent{
		Resource:   resource,
		Kind:       kind,
		ResourceID: id,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
	err := n.events.Publish(ctx, ev)
	n.metrics.RecordEvent(ev.Type(), err)
	if err != nil {
		n.logger.WithError(err).WithFields(log.Fields{
			"event_type":  ev.Type(),
			"resource_id": id,
		}).Warn("failed to publish resource event")
	}
}

func serviceLogger(logger *log.Entry, name string) *log.Entry {
	if logger == nil {
		logger = log.New().WithField("component", "bakery")
	}
	return logger.WithField("service", name)
}
