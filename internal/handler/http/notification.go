package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/notification"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notificationService: notificationService}
}

// List implements NotificationHandler.
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	unreadOnly := q.Get("unread_only") == "true"
	limit := 0
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = v
	}

	notifications, err := h.notificationService.List(r.Context(), claims.EmployeeID, unreadOnly, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notifications)
}

// MarkRead implements NotificationHandler. Recipient-scoped so one employee
// cannot mark another's notification.
func (h *notificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	notificationID := chi.URLParam(r, "id")
	if notificationID == "" {
		response.BadRequest(w, "Notification ID is required", nil)
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), notificationID, claims.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}
