// Package http exposes the application's use cases over an echo HTTP API.
// Handlers translate JSON payloads into commands and queries and map the
// error taxonomy onto HTTP status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"tracksaidas/internal/core/application/usecases/commands"
	"tracksaidas/internal/core/application/usecases/queries"
	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// Handlers bundles the command and query handlers the server depends on.
type Handlers struct {
	CreateDelivery   commands.CreateDeliveryCommandHandler
	AttachAddress    commands.AttachAddressCommandHandler
	AssignCourier    commands.AssignCourierCommandHandler
	RemoveCourier    commands.RemoveCourierCommandHandler
	MarkDelivered    commands.MarkDeliveredCommandHandler
	MarkAbsent       commands.MarkAbsentCommandHandler
	CancelDelivery   commands.CancelDeliveryCommandHandler
	StartSession     commands.StartSessionCommandHandler
	AdvanceSession   commands.AdvanceSessionCommandHandler
	FinishSession    commands.FinishSessionCommandHandler
	ReorderStops    commands.ReorderStopsCommandHandler
	OptimizeRoute   commands.OptimizeRouteCommandHandler
	GenerateClosure commands.GenerateClosureCommandHandler

	DeliveryHistory   queries.GetDeliveryHistoryQueryHandler
	PendingDeliveries queries.GetPendingDeliveriesQueryHandler
	CourierDay        queries.GetCourierDayQueryHandler
	RouteStats        queries.GetRouteStatsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes binds the API surface onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/deliveries", s.CreateDelivery)
	v1.GET("/deliveries/pending", s.GetPendingDeliveries)
	v1.POST("/deliveries/:id/address", s.AttachAddress)
	v1.POST("/deliveries/:id/assign", s.AssignCourier)
	v1.POST("/deliveries/:id/unassign", s.RemoveCourier)
	v1.POST("/deliveries/:id/delivered", s.MarkDelivered)
	v1.POST("/deliveries/:id/absent", s.MarkAbsent)
	v1.POST("/deliveries/:id/cancel", s.CancelDelivery)
	v1.GET("/deliveries/:id/history", s.GetDeliveryHistory)

	v1.GET("/couriers/:id/day", s.GetCourierDay)

	v1.POST("/sessions", s.StartSession)
	v1.POST("/sessions/:id/advance", s.AdvanceSession)
	v1.POST("/sessions/:id/finish", s.FinishSession)
	v1.POST("/sessions/:id/reorder", s.ReorderStops)
	v1.POST("/sessions/:id/optimize", s.OptimizeRoute)
	v1.GET("/sessions/:id/stats", s.GetRouteStats)

	v1.POST("/closures", s.GenerateClosure)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps the error taxonomy onto HTTP status codes. Anything not
// classified by a sentinel is treated as an internal failure.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidReference):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func parseAddressSource(label string) (delivery.AddressSource, error) {
	switch label {
	case "manual":
		return delivery.AddressSourceManual, nil
	case "ocr":
		return delivery.AddressSourceOCR, nil
	case "voice":
		return delivery.AddressSourceVoice, nil
	default:
		return 0, errs.NewValueIsInvalidError("source")
	}
}

func parseScope(label string) (closure.Scope, error) {
	switch label {
	case "courier":
		return closure.ScopeCourier, nil
	case "base":
		return closure.ScopeBase, nil
	default:
		return 0, errs.NewValueIsInvalidError("scope")
	}
}

type createDeliveryRequest struct {
	Date        string `json:"date"`
	Code        string `json:"code"`
	Service     string `json:"service"`
	Base        string `json:"base"`
	SubBase     string `json:"subBase"`
	ShipmentRef string `json:"shipmentRef"`
	OrderRef    string `json:"orderRef"`
}

type createDeliveryResponse struct {
	ID string `json:"id"`
}

// CreateDelivery handles POST /api/v1/deliveries - registers a parcel for an
// operating day.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req createDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return badRequest(ctx, "Invalid date, expected YYYY-MM-DD")
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, date, req.Code, req.Service, req.Base, req.SubBase,
		req.ShipmentRef, req.OrderRef)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.CreateDelivery.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, createDeliveryResponse{ID: deliveryID.String()})
}

type attachAddressRequest struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress"`
	Source           string  `json:"source"`
}

// AttachAddress handles POST /api/v1/deliveries/:id/address - records a
// geocoded address captured manually, by OCR or by voice.
func (s *Server) AttachAddress(ctx echo.Context) error {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req attachAddressRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	source, err := parseAddressSource(req.Source)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAttachAddressCommand(
		deliveryID, req.Latitude, req.Longitude, req.FormattedAddress, source)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.AttachAddress.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignCourierRequest struct {
	CourierID string `json:"courierId"`
}

// AssignCourier handles POST /api/v1/deliveries/:id/assign - assigns or
// reassigns the parcel to a courier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req assignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(deliveryID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.AssignCourier.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCourier handles POST /api/v1/deliveries/:id/unassign - returns the
// parcel to the pending pool.
func (s *Server) RemoveCourier(ctx echo.Context) error {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRemoveCourierCommand(deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.RemoveCourier.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type markDeliveredRequest struct {
	DeliveredAt time.Time `json:"deliveredAt"`
}

// MarkDelivered handles POST /api/v1/deliveries/:id/delivered - confirms the
// drop-off and bills the parcel.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req markDeliveredRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkDeliveredCommand(deliveryID, req.DeliveredAt)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.MarkDelivered.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type markAbsentRequest struct {
	ReasonID string `json:"reasonId"`
}

// MarkAbsent handles POST /api/v1/deliveries/:id/absent - records a failed
// drop-off attempt with a catalogued reason.
func (s *Server) MarkAbsent(ctx echo.Context) error {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req markAbsentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	reasonID, err := kernel.UUIDFromString(req.ReasonID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkAbsentCommand(deliveryID, reasonID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.MarkAbsent.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type cancelDeliveryRequest struct {
	ActorID string `json:"actorId"`
	Note    string `json:"note"`
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel - cancels the
// parcel and voids its billing item if one exists.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req cancelDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var actorID *kernel.UUID
	if req.ActorID != "" {
		id, actorErr := kernel.UUIDFromString(req.ActorID)
		if actorErr != nil {
			return writeError(ctx, actorErr)
		}
		actorID = &id
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, actorID, req.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.CancelDelivery.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type historyEntryResponse struct {
	ID                string    `json:"id"`
	Kind              string    `json:"kind"`
	OccurredAt        time.Time `json:"occurredAt"`
	FromStatus        string    `json:"fromStatus"`
	ToStatus          string    `json:"toStatus"`
	CourierID         *string   `json:"courierId,omitempty"`
	PreviousCourierID *string   `json:"previousCourierId,omitempty"`
	ActorID           *string   `json:"actorId,omitempty"`
	Note              string    `json:"note,omitempty"`
}

// GetDeliveryHistory handles GET /api/v1/deliveries/:id/history - returns the
// parcel's ledger oldest first.
func (s *Server) GetDeliveryHistory(ctx echo.Context) error {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryHistoryQuery(deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.handlers.DeliveryHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]historyEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = historyEntryResponse{
			ID:                entry.ID.String(),
			Kind:              entry.Kind,
			OccurredAt:        entry.OccurredAt,
			FromStatus:        entry.FromStatus,
			ToStatus:          entry.ToStatus,
			CourierID:         optionalID(entry.CourierID),
			PreviousCourierID: optionalID(entry.PreviousCourierID),
			ActorID:           optionalID(entry.ActorID),
			Note:              entry.Note,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type pendingDeliveryResponse struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	ServiceKind      string `json:"serviceKind"`
	SubBase          string `json:"subBase"`
	FormattedAddress string `json:"formattedAddress,omitempty"`
	HasAddress       bool   `json:"hasAddress"`
}

// GetPendingDeliveries handles GET /api/v1/deliveries/pending - lists the
// unassigned parcels of a base for one operating day.
func (s *Server) GetPendingDeliveries(ctx echo.Context) error {
	date, err := time.Parse(dateLayout, ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, "Invalid date, expected YYYY-MM-DD")
	}

	query, err := queries.NewGetPendingDeliveriesQuery(ctx.QueryParam("base"), date)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveries, err := s.handlers.PendingDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]pendingDeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		response[i] = pendingDeliveryResponse{
			ID:               d.ID.String(),
			Code:             d.Code,
			ServiceKind:      d.ServiceKind,
			SubBase:          d.SubBase,
			FormattedAddress: d.FormattedAddress,
			HasAddress:       d.HasAddress,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type courierDayResponse struct {
	ID               string     `json:"id"`
	Code             string     `json:"code"`
	ServiceKind      string     `json:"serviceKind"`
	Status           string     `json:"status"`
	FormattedAddress string     `json:"formattedAddress,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
}

// GetCourierDay handles GET /api/v1/couriers/:id/day - lists a courier's
// parcels for one operating day, terminal outcomes included.
func (s *Server) GetCourierDay(ctx echo.Context) error {
	courierID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	date, err := time.Parse(dateLayout, ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, "Invalid date, expected YYYY-MM-DD")
	}

	query, err := queries.NewGetCourierDayQuery(courierID, date)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveries, err := s.handlers.CourierDay.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]courierDayResponse, len(deliveries))
	for i, d := range deliveries {
		response[i] = courierDayResponse{
			ID:               d.ID.String(),
			Code:             d.Code,
			ServiceKind:      d.ServiceKind,
			Status:           d.Status,
			FormattedAddress: d.FormattedAddress,
			DeliveredAt:      d.DeliveredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type startSessionRequest struct {
	CourierID string    `json:"courierId"`
	Date      string    `json:"date"`
	StopOrder []string  `json:"stopOrder"`
	StartedAt time.Time `json:"startedAt"`
}

type startSessionResponse struct {
	ID string `json:"id"`
}

// StartSession handles POST /api/v1/sessions - starts a courier's route for
// the day.
func (s *Server) StartSession(ctx echo.Context) error {
	var req startSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return badRequest(ctx, "Invalid date, expected YYYY-MM-DD")
	}

	stopOrder, err := parseIDs(req.StopOrder)
	if err != nil {
		return writeError(ctx, err)
	}

	sessionID := kernel.NewUUID()
	cmd, err := commands.NewStartSessionCommand(sessionID, courierID, date, stopOrder, req.StartedAt)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.StartSession.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, startSessionResponse{ID: sessionID.String()})
}

type advanceSessionRequest struct {
	ExpectedIndex int       `json:"expectedIndex"`
	At            time.Time `json:"at"`
}

type advanceSessionResponse struct {
	Finished bool `json:"finished"`
}

// AdvanceSession handles POST /api/v1/sessions/:id/advance - moves the route
// cursor past the stop the app just completed.
func (s *Server) AdvanceSession(ctx echo.Context) error {
	sessionID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req advanceSessionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdvanceSessionCommand(sessionID, req.ExpectedIndex, req.At)
	if err != nil {
		return writeError(ctx, err)
	}

	finished, err := s.handlers.AdvanceSession.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, advanceSessionResponse{Finished: finished})
}

type finishSessionRequest struct {
	At time.Time `json:"at"`
}

// FinishSession handles POST /api/v1/sessions/:id/finish - ends the route
// regardless of remaining stops.
func (s *Server) FinishSession(ctx echo.Context) error {
	sessionID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req finishSessionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFinishSessionCommand(sessionID, req.At)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.FinishSession.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reorderStopsRequest struct {
	StopOrder []string `json:"stopOrder"`
}

// ReorderStops handles POST /api/v1/sessions/:id/reorder - replaces the
// remaining stop order with the courier's own ordering.
func (s *Server) ReorderStops(ctx echo.Context) error {
	sessionID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req reorderStopsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	stopOrder, err := parseIDs(req.StopOrder)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReorderStopsCommand(sessionID, stopOrder)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.handlers.ReorderStops.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type optimizeRouteResponse struct {
	StopOrder []string `json:"stopOrder"`
}

// OptimizeRoute handles POST /api/v1/sessions/:id/optimize - reorders the
// remaining stops by the nearest-neighbor heuristic and returns the result.
func (s *Server) OptimizeRoute(ctx echo.Context) error {
	sessionID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewOptimizeRouteCommand(sessionID)
	if err != nil {
		return writeError(ctx, err)
	}

	order, err := s.handlers.OptimizeRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	stopOrder := make([]string, len(order))
	for i, id := range order {
		stopOrder[i] = id.String()
	}

	return ctx.JSON(http.StatusOK, optimizeRouteResponse{StopOrder: stopOrder})
}

type routeStatsResponse struct {
	Status           string  `json:"status"`
	TotalStops       int     `json:"totalStops"`
	VisitedStops     int     `json:"visitedStops"`
	RemainingStops   int     `json:"remainingStops"`
	DistanceKm       float64 `json:"distanceKm"`
	EstimatedMinutes int     `json:"estimatedMinutes"`
}

// GetRouteStats handles GET /api/v1/sessions/:id/stats - returns remaining
// distance and a service-time estimate for the route.
func (s *Server) GetRouteStats(ctx echo.Context) error {
	sessionID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRouteStatsQuery(sessionID)
	if err != nil {
		return writeError(ctx, err)
	}

	stats, err := s.handlers.RouteStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, routeStatsResponse{
		Status:           stats.Status,
		TotalStops:       stats.TotalStops,
		VisitedStops:     stats.VisitedStops,
		RemainingStops:   stats.RemainingStops,
		DistanceKm:       stats.DistanceKm,
		EstimatedMinutes: stats.EstimatedMinutes,
	})
}

type generateClosureRequest struct {
	Scope       string `json:"scope"`
	SubjectID   string `json:"subjectId"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
}

type generateClosureResponse struct {
	ID string `json:"id"`
}

// GenerateClosure handles POST /api/v1/closures - generates the billing
// closure of one courier or base for a period. A closure that already exists
// for the tuple is a conflict, not a silent skip.
func (s *Server) GenerateClosure(ctx echo.Context) error {
	var req generateClosureRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	scope, err := parseScope(req.Scope)
	if err != nil {
		return writeError(ctx, err)
	}

	periodStart, err := time.Parse(dateLayout, req.PeriodStart)
	if err != nil {
		return badRequest(ctx, "Invalid periodStart, expected YYYY-MM-DD")
	}
	periodEnd, err := time.Parse(dateLayout, req.PeriodEnd)
	if err != nil {
		return badRequest(ctx, "Invalid periodEnd, expected YYYY-MM-DD")
	}

	cmd, err := commands.NewGenerateClosureCommand(scope, req.SubjectID, periodStart, periodEnd)
	if err != nil {
		return writeError(ctx, err)
	}

	closureID, err := s.handlers.GenerateClosure.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, generateClosureResponse{ID: closureID.String()})
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, len(raw))
	for i, r := range raw {
		id, err := kernel.UUIDFromString(r)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
