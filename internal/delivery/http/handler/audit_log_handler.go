package handler

import (
	"errors"
	"net/http"

	"healthcare-records/internal/delivery/http/middleware"
	"healthcare-records/internal/usecase"
	"healthcare-records/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// GetMyAuditLogs lists the audit trail of the caller, newest first
// @Summary List own audit logs
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /audit-logs [get]
func (h *AuditLogHandler) GetMyAuditLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	res, err := h.auditLogUsecase.GetMyAuditLogs(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", res)
}

// GetAuditLog returns a single audit entry written by the caller
// @Summary Get audit log by ID
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Param id path int true "Audit log ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /audit-logs/{id} [get]
func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := parseInt64Param(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	res, err := h.auditLogUsecase.GetAuditLog(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAuditLogNotFound):
			response.NotFound(w, "Audit log not found")
		case errors.Is(err, usecase.ErrAuditLogAccessDenied):
			response.Forbidden(w, "You do not have access to this audit log")
		default:
			response.InternalServerError(w, "Failed to get audit log")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", res)
}
