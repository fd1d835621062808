package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func validateCoordinates(qrLat, qrLon, userLat, userLon float64) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidLatitude(qrLat) || !validator.IsValidLongitude(qrLon) {
		errs = append(errs, validator.ValidationError{Field: "qr_coordinates", Message: "invalid QR coordinates"})
	}
	if !validator.IsValidLatitude(userLat) || !validator.IsValidLongitude(userLon) {
		errs = append(errs, validator.ValidationError{Field: "user_coordinates", Message: "invalid device coordinates"})
	}
	return errs
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	var req attendance.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.RelationID == "" {
		req.RelationID = claims.RelationID
	}
	if validator.IsEmpty(req.RelationID) {
		response.BadRequest(w, "Relation ID is required", nil)
		return
	}
	if errs := validateCoordinates(req.QRLatitude, req.QRLongitude, req.UserLatitude, req.UserLongitude); len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	event, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", event)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	var req attendance.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.RecordID == "" && req.RelationID == "" {
		req.RelationID = claims.RelationID
	}
	if req.RecordID == "" && req.RelationID == "" {
		response.BadRequest(w, "Record ID or relation ID is required", nil)
		return
	}
	if errs := validateCoordinates(req.QRLatitude, req.QRLongitude, req.UserLatitude, req.UserLongitude); len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	event, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", event)
}

func parseEventFilter(r *http.Request) attendance.EventFilter {
	q := r.URL.Query()
	filter := attendance.EventFilter{Page: 1, Limit: 20}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if v := q.Get("date"); v != "" {
		filter.Date = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("relation_id"); v != "" {
		filter.RelationID = &v
	}
	return filter
}

// List implements AttendanceHandler. Company-wide listing for managers and
// HR admins.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	if claims.CompanyID == "" {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	result, err := h.attendanceService.ListEvents(r.Context(), claims.CompanyID, parseEventFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Events, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// GetMyAttendance implements AttendanceHandler. Scopes the listing to the
// caller's own employment relation regardless of query parameters.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	if claims.RelationID == "" || claims.CompanyID == "" {
		response.Forbidden(w, "Employment relation not found in token")
		return
	}

	filter := parseEventFilter(r)
	filter.RelationID = &claims.RelationID

	result, err := h.attendanceService.ListEvents(r.Context(), claims.CompanyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Events, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}
