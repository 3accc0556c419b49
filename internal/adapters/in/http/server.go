// Package http exposes the order lifecycle over a JSON API.
// Every route, carrier webhooks included, is tenant-scoped: the gateway in
// front of this service authenticates the caller and forwards the verified
// tenant in the X-Tenant-ID header, which the tenant middleware requires.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"

	"github.com/labstack/echo/v4"
)

// Header names populated by the authenticating gateway.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderActor    = "X-Actor"
)

const tenantContextKey = "tenantID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	ingestStatusHandler    commands.IngestCarrierStatusCommandHandler

	// Query handlers
	getValidNextStatesHandler queries.GetValidNextStatesQueryHandler
	getOrderTimelineHandler   queries.GetOrderTimelineQueryHandler
	getOpenOrdersHandler      queries.GetOpenOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	ingestStatusHandler commands.IngestCarrierStatusCommandHandler,
	getValidNextStatesHandler queries.GetValidNextStatesQueryHandler,
	getOrderTimelineHandler queries.GetOrderTimelineQueryHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		ingestStatusHandler:       ingestStatusHandler,
		getValidNextStatesHandler: getValidNextStatesHandler,
		getOrderTimelineHandler:   getOrderTimelineHandler,
		getOpenOrdersHandler:      getOpenOrdersHandler,
	}
}

// RegisterRoutes wires the API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", TenantMiddleware())

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.GET("/orders/:id/next-states", s.GetNextStates)
	api.GET("/orders/:id/timeline", s.GetTimeline)
	api.POST("/webhooks/:carrier", s.CarrierWebhook)
}

// TenantMiddleware extracts the verified tenant id forwarded by the gateway.
// Requests without a parseable tenant are rejected before any handler runs.
func TenantMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tenantID, err := kernel.TenantIDFromString(ctx.Request().Header.Get(HeaderTenantID))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing or invalid tenant",
				})
			}

			ctx.Set(tenantContextKey, tenantID)
			return next(ctx)
		}
	}
}

func tenantFrom(ctx echo.Context) kernel.TenantID {
	tenantID, _ := ctx.Get(tenantContextKey).(kernel.TenantID)
	return tenantID
}

func actorFrom(ctx echo.Context) string {
	if actor := ctx.Request().Header.Get(HeaderActor); actor != "" {
		return actor
	}
	return "api"
}

// CreateOrder handles POST /api/v1/orders - imports a new order in status NEW.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	if req.ID != nil {
		parsed, err := kernel.UUIDFromBytes((*req.ID)[:])
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid order id",
			})
		}
		orderID = parsed
	}

	lines := make([]order.LineItem, 0, len(req.Lines))
	for _, l := range req.Lines {
		line, err := order.NewLineItem(l.SKU, l.Quantity)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid line item: " + err.Error(),
			})
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderCommand(tenantFrom(ctx), orderID, lines, actorFrom(ctx))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an order
// to a new lifecycle status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown target status: " + req.Target,
		})
	}

	carrier := shipment.CarrierUnknown
	if req.Carrier != "" {
		carrier, err = shipment.CarrierFromString(req.Carrier)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Unknown carrier: " + req.Carrier,
			})
		}
	}

	cmd, err := commands.NewTransitionOrderCommand(tenantFrom(ctx), orderID, target, actorFrom(ctx), carrier)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid transition request: " + err.Error(),
		})
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// GetNextStates handles GET /api/v1/orders/:id/next-states.
func (s *Server) GetNextStates(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetValidNextStatesQuery(tenantFrom(ctx), orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	resp, err := s.getValidNextStatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	nextStates := make([]string, 0, len(resp.NextStates))
	for _, status := range resp.NextStates {
		nextStates = append(nextStates, status.String())
	}

	return ctx.JSON(http.StatusOK, NextStatesResponse{
		Status:     resp.Status.String(),
		NextStates: nextStates,
	})
}

// GetTimeline handles GET /api/v1/orders/:id/timeline.
func (s *Server) GetTimeline(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderTimelineQuery(tenantFrom(ctx), orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	events, err := s.getOrderTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]TimelineEvent, 0, len(events))
	for _, event := range events {
		response = append(response, TimelineEvent{
			ID:         event.EventID.Bytes(),
			EventType:  event.EventType,
			Actor:      event.Actor,
			Metadata:   event.Metadata,
			OccurredAt: event.OccurredAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrders handles GET /api/v1/orders - lists the tenant's open orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := queries.NewGetOpenOrdersQuery(tenantFrom(ctx))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, OrderResponse{
			ID:         o.ID.Bytes(),
			Status:     o.Status.String(),
			ImportedAt: o.ImportedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CarrierWebhook handles POST /api/v1/webhooks/:carrier - ingests a carrier
// status report. Re-deliveries of an already-applied report return 200 with
// changed=false.
func (s *Server) CarrierWebhook(ctx echo.Context) error {
	carrier, err := shipment.CarrierFromString(ctx.Param("carrier"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown carrier: " + ctx.Param("carrier"),
		})
	}

	var req CarrierWebhookRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	shipmentID, err := kernel.UUIDFromBytes(req.ShipmentID[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id",
		})
	}

	cmd, err := commands.NewIngestCarrierStatusCommand(tenantFrom(ctx), shipmentID, carrier, req.RawStatus)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid webhook payload: " + err.Error(),
		})
	}

	ingested, err := s.ingestStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ShipmentResponse{
		ID:            ingested.ID().Bytes(),
		OrderID:       ingested.OrderID().Bytes(),
		Carrier:       ingested.Carrier().String(),
		Status:        ingested.Status().String(),
		LastRawStatus: ingested.LastRawStatus(),
		Changed:       ingested.Changed(),
	})
}

// writeError maps domain errors onto the API's status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var illegalErr *order.IllegalTransitionError
	if errors.As(err, &illegalErr) {
		legal := make([]string, 0, len(illegalErr.LegalNextStates))
		for _, status := range illegalErr.LegalNextStates {
			legal = append(legal, status.String())
		}

		return ctx.JSON(http.StatusConflict, Error{
			Code:            http.StatusConflict,
			Message:         err.Error(),
			LegalNextStates: legal,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Not found",
		})
	case errors.Is(err, locker.ErrLockTimeout):
		ctx.Response().Header().Set("Retry-After", "1")
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "The order is busy, retry shortly",
		})
	case errors.Is(err, inventory.ErrInsufficientStock):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Insufficient stock to hold the reservation",
		})
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "The order was modified concurrently, retry from a fresh read",
		})
	case errors.Is(err, services.ErrUnknownCarrier):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func toOrderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, OrderLine{
			SKU:         line.SKU(),
			Quantity:    line.Quantity(),
			ReservedQty: line.ReservedQty(),
			ShippedQty:  line.ShippedQty(),
		})
	}

	ts := o.Timestamps()
	return OrderResponse{
		ID:            o.ID().Bytes(),
		Status:        o.Status().String(),
		Lines:         lines,
		ImportedAt:    ts.ImportedAt,
		ReservedAt:    ts.ReservedAt,
		ReadyToShipAt: ts.ReadyToShipAt,
		ShippedAt:     ts.ShippedAt,
		DeliveredAt:   ts.DeliveredAt,
		CancelledAt:   ts.CancelledAt,
		ReturnedAt:    ts.ReturnedAt,
	}
}
