package ordering

import (
	"context"
	"errors"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/identity"
	"github.com/fieldsales/backend/internal/domain/ordering"
	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxNumberConflictRetries bounds how often a submission regenerates its
// order number after losing a unique-index race to a concurrent submission
const maxNumberConflictRetries = 3

// OrderService orchestrates order submission and history reads
type OrderService struct {
	orderRepo      ordering.OrderRepository
	draftRepo      ordering.DraftRepository
	productRepo    catalog.ProductRepository
	clientRepo     partner.ClientRepository
	userRepo       identity.UserRepository
	gateway        ordering.SubmissionGateway
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	draftRepo ordering.DraftRepository,
	productRepo catalog.ProductRepository,
	clientRepo partner.ClientRepository,
	userRepo identity.UserRepository,
	gateway ordering.SubmissionGateway,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		draftRepo:   draftRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Validate runs the same pre-persistence checks as a submission:
// delivery date rule, client resolution and line validation against
// current catalog data. Nothing is written.
func (s *OrderService) Validate(ctx context.Context, req ValidateOrderRequest) (*ValidationResultResponse, error) {
	if _, err := parseDeliveryDate(req.DeliveryDate); err != nil {
		return nil, err
	}

	if _, err := s.findClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	products, err := resolveProducts(ctx, s.productRepo, req.Items)
	if err != nil {
		return nil, err
	}

	result := ordering.ValidateItems(toDomainItemInputs(req.Items), products)
	response := ToValidationResultResponse(result)
	return &response, nil
}

// Submit runs the full submission sequence. The order is durably
// written in PENDING status before the fulfillment gateway is called;
// the gateway outcome then advances it to APPROVED or SEND_FAILED in a
// second write. A failed hand-off is absorbed into the order's state
// and returned as a normal response, never as an error. Once the order
// row is durable the owner's draft is deleted regardless of outcome.
func (s *OrderService) Submit(ctx context.Context, ownerID uuid.UUID, req SubmitOrderRequest) (*SubmitOrderResponse, error) {
	deliveryDate, err := parseDeliveryDate(req.DeliveryDate)
	if err != nil {
		return nil, err
	}

	products, err := resolveProducts(ctx, s.productRepo, req.Items)
	if err != nil {
		return nil, err
	}

	result := ordering.ValidateItems(toDomainItemInputs(req.Items), products)
	if !result.Valid {
		return nil, &ordering.ValidationError{Result: result}
	}

	client, err := s.findClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		// An authenticated caller without a user row is a broken
		// precondition, not a validation failure
		return nil, ErrOwnerNotFound
	}

	// First atomic unit: the PENDING order must be durable before the
	// gateway sees it, so a crash mid-submission leaves an auditable row.
	// Two concurrent submissions can probe the same candidate number; the
	// unique index decides the winner and the loser regenerates.
	var order *ordering.Order
	for attempt := 0; ; attempt++ {
		orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
		if err != nil {
			return nil, err
		}

		order, err = ordering.NewOrder(orderNumber, ownerID, req.ClientID, client.Name, deliveryDate)
		if err != nil {
			return nil, err
		}
		order.SetClientDeadline(client.OrderDeadline)
		for _, item := range req.Items {
			if _, err := order.AddItem(products[item.ProductCode], item.BoxQuantity, item.PieceQuantity); err != nil {
				return nil, err
			}
		}

		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, shared.ErrAlreadyExists) && attempt < maxNumberConflictRetries {
			s.logger.Warn("order number taken by a concurrent submission, regenerating",
				zap.String("order_number", orderNumber))
			continue
		}
		return nil, err
	}
	s.publishEvents(ctx, order)

	submission, gatewayErr := s.gateway.Submit(ctx, order)
	switch {
	case gatewayErr != nil:
		s.logger.Warn("fulfillment hand-off failed",
			zap.String("order_number", order.OrderNumber),
			zap.Error(gatewayErr))
		err = order.MarkSendFailed(gatewayErr.Error())
	case !submission.Accepted:
		reason := submission.Reason
		if reason == "" {
			reason = "rejected by fulfillment"
		}
		err = order.MarkSendFailed(reason)
	default:
		err = order.Approve()
	}
	if err != nil {
		return nil, err
	}

	// Second atomic unit: persist the gateway outcome
	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	s.deleteDraftAfterSubmit(ctx, ownerID, order.OrderNumber)

	return &SubmitOrderResponse{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		FailureReason: order.FailureReason,
		SubmittedAt:   order.OrderDate,
	}, nil
}

// GetOrder retrieves one of the owner's orders by ID
func (s *OrderService) GetOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetOrderByNumber retrieves one of the owner's orders by business number
func (s *OrderService) GetOrderByNumber(ctx context.Context, ownerID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListOrders returns the owner's order history with status filtering
// and pagination
func (s *OrderService) ListOrders(ctx context.Context, ownerID uuid.UUID, filter ListOrdersFilter) (*shared.Paginated[OrderListItemResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.Status != "" && !ordering.ApprovalStatus(filter.Status).IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown approval status filter")
	}

	repoFilter := shared.DefaultFilter()
	repoFilter.Page = filter.Page
	repoFilter.PageSize = filter.PageSize
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindByOwner(ctx, ownerID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByOwner(ctx, ownerID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderListItemResponse(&orders[i])
	}

	paginated := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

func (s *OrderService) findClient(ctx context.Context, clientID uuid.UUID) (*partner.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// deleteDraftAfterSubmit removes the owner's draft once the order row is
// durable. The submission already succeeded from the caller's point of
// view, so draft cleanup problems are logged and swallowed.
func (s *OrderService) deleteDraftAfterSubmit(ctx context.Context, ownerID uuid.UUID, orderNumber string) {
	if err := s.draftRepo.DeleteByOwner(ctx, ownerID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("failed to delete draft after order submission",
			zap.String("owner_id", ownerID.String()),
			zap.String("order_number", orderNumber),
			zap.Error(err))
	}
}

func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher == nil {
		order.ClearDomainEvents()
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
	order.ClearDomainEvents()
}
