package bakery_test

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

var errStoreDown = errors.New("connection refused")

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ResourceEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.ResourceEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type())
	}
	return out
}

// failingClientRepo отказывает на всех операциях, как недоступная база.
type failingClientRepo struct{}

func (failingClientRepo) Save(context.Context, *domain.Client) error { return errStoreDown }
func (failingClientRepo) FindByID(context.Context, int64) (*domain.Client, error) {
	return nil, errStoreDown
}
func (failingClientRepo) FindAll(context.Context) ([]domain.Client, error) { return nil, errStoreDown }
func (failingClientRepo) Update(context.Context, domain.Client) error    { return errStoreDown }
func (failingClientRepo) Delete(context.Context, int64) error            { return errStoreDown }

// linkFailingOrderRepo оборачивает рабочий репозиторий и отказывает только на записи связи.
type linkFailingOrderRepo struct {
	domain.OrderRepository
}

func (linkFailingOrderRepo) AddClientToOrder(context.Context, int64, int64) error {
	return domain.ErrReferenceNotFound
}

// countingOrderRepo считает обращения к таблице связей.
type countingOrderRepo struct {
	domain.OrderRepository
	mu      sync.Mutex
	updates int
}

func (r *countingOrderRepo) Update(ctx context.Context, orderID, clientID int64) error {
	r.mu.Lock()
	r.updates++
	r.mu.Unlock()
	return r.OrderRepository.Update(ctx, orderID, clientID)
}
