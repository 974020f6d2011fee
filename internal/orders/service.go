package orders

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/karimbenali/boucherie-backend/internal/cart"
	"github.com/karimbenali/boucherie-backend/pkg/db/models"
	"github.com/karimbenali/boucherie-backend/pkg/enums"
	"github.com/karimbenali/boucherie-backend/pkg/errors"
	"github.com/karimbenali/boucherie-backend/pkg/kv"
	"github.com/karimbenali/boucherie-backend/pkg/logger"
	"github.com/karimbenali/boucherie-backend/pkg/metrics"
)

type orderWriter interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateLines(ctx context.Context, lines []models.OrderLine) error
	ListLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLine, error)
}

type cartStore interface {
	Load(ctx context.Context, sessionID string) cart.Cart
	Clear(ctx context.Context, sessionID string) error
}

// Service composes checkout: it turns the session cart plus the customer's
// contact details into an order header and its lines.
type Service interface {
	Submit(ctx context.Context, sessionID string, customer Customer) (OrderDTO, error)
	Lines(ctx context.Context, orderID uuid.UUID) ([]LineDTO, error)
}

type service struct {
	repo     orderWriter
	carts    cartStore
	fallback kv.Store
	queueKey string
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo     orderWriter
	Carts    cartStore
	Fallback kv.Store
	QueueKey string
	Metrics  *metrics.StorefrontMetrics
	Logger   *logger.Logger
}

// NewService builds the order composer.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, stderrors.New("order repo required")
	}
	if params.Carts == nil {
		return nil, stderrors.New("cart store required")
	}
	if params.Fallback == nil {
		return nil, stderrors.New("fallback store required")
	}
	if params.QueueKey == "" {
		return nil, stderrors.New("queue key required")
	}
	return &service{
		repo:     params.Repo,
		carts:    params.Carts,
		fallback: params.Fallback,
		queueKey: params.QueueKey,
		metrics:  params.Metrics,
		logg:     params.Logger,
		inFlight: make(map[string]struct{}),
	}, nil
}

// Submit creates the order from the session cart. The header insert is
// authoritative: if it fails the cart stays intact and the caller gets an
// error. The line batch is not: a failed batch is appended to the fallback
// queue and the submission still succeeds, so the customer never sees a
// checkout error for a half-written order.
func (s *service) Submit(ctx context.Context, sessionID string, customer Customer) (OrderDTO, error) {
	customer.FirstName = strings.TrimSpace(customer.FirstName)
	customer.LastName = strings.TrimSpace(customer.LastName)
	customer.Phone = strings.TrimSpace(customer.Phone)
	if customer.FirstName == "" || customer.LastName == "" || customer.Phone == "" {
		return OrderDTO{}, errors.New(errors.CodeValidation, "first name, last name and phone are required")
	}

	if !s.begin(sessionID) {
		return OrderDTO{}, errors.New(errors.CodeStateConflict, "an order is already being submitted for this session")
	}
	defer s.end(sessionID)

	current := s.carts.Load(ctx, sessionID)
	if len(current.Items) == 0 {
		return OrderDTO{}, errors.New(errors.CodeValidation, "cart is empty")
	}

	order := &models.Order{
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Phone:     customer.Phone,
		Status:    enums.OrderStatusPending,
		Paid:      true,
		Total:     current.Total(),
	}
	order, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return OrderDTO{}, errors.Wrap(errors.CodeDependency, err, "failed to create order")
	}

	lines := make([]models.OrderLine, 0, len(current.Items))
	for _, item := range current.Items {
		lines = append(lines, models.OrderLine{
			OrderID:    order.ID,
			ProductID:  item.Product.ID,
			Name:       item.Product.Name,
			PricePerKG: item.Product.PricePerKG,
			QuantityKG: item.QuantityKG,
		})
	}
	if err := s.repo.CreateLines(ctx, lines); err != nil {
		s.queueLines(ctx, order.ID, lines, err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCartSession(ctx, sessionID), "failed to clear cart after submission")
	}
	s.metrics.IncOrdersSubmitted()

	return ToOrderDTO(*order), nil
}

// queueLines parks the batch in the fallback queue so the lines survive for
// later reads even though they never reached the database.
func (s *service) queueLines(ctx context.Context, orderID uuid.UUID, lines []models.OrderLine, cause error) {
	s.metrics.IncLineWriteFailure()
	if s.logg != nil {
		s.logg.Error(s.logg.WithOrderID(ctx, orderID.String()), "order line batch failed, queueing to fallback store", cause)
	}
	for _, line := range lines {
		if err := s.fallback.AppendJSON(ctx, s.queueKey, queuedLine{
			OrderID:    line.OrderID,
			ProductID:  line.ProductID,
			Name:       line.Name,
			PricePerKG: line.PricePerKG,
			QuantityKG: line.QuantityKG,
		}); err != nil && s.logg != nil {
			s.logg.Error(s.logg.WithOrderID(ctx, orderID.String()), "failed to queue order line", err)
		}
	}
}

func (s *service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *service) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
