package handler

import (
	"errors"
	"net/http"

	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/delivery/http/middleware"
	"healthcare-records/internal/usecase"
	"healthcare-records/pkg/response"
	"healthcare-records/pkg/validator"
)

type MappingHandler struct {
	mappingUsecase usecase.MappingUsecase
	validator      *validator.CustomValidator
}

func NewMappingHandler(mappingUsecase usecase.MappingUsecase, validator *validator.CustomValidator) *MappingHandler {
	return &MappingHandler{
		mappingUsecase: mappingUsecase,
		validator:      validator,
	}
}

// CreateMapping assigns a doctor to one of the caller's patients
// @Summary Assign doctor to patient
// @Tags Mappings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMappingRequest true "Create Mapping Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /mappings [post]
func (h *MappingHandler) CreateMapping(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateMappingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Normalize()
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.mappingUsecase.CreateMapping(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create mapping")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor assigned to patient successfully", res)
}

// GetAllMappings handles listing every mapping
// @Summary List mappings
// @Tags Mappings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /mappings [get]
func (h *MappingHandler) GetAllMappings(w http.ResponseWriter, r *http.Request) {
	res, err := h.mappingUsecase.GetAllMappings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get mappings")
		return
	}

	response.Success(w, http.StatusOK, "Mappings retrieved successfully", res)
}

// GetPatientMappings lists the doctors assigned to a patient
// @Summary List doctors of a patient
// @Tags Mappings
// @Security BearerAuth
// @Produce json
// @Param patient_id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mappings/{patient_id} [get]
func (h *MappingHandler) GetPatientMappings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, ok := parseUUIDParam(r, "patient_id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	res, err := h.mappingUsecase.GetPatientMappings(r.Context(), patientID, userID)
	if err != nil {
		h.writeError(w, err, "Failed to get patient mappings")
		return
	}

	response.Success(w, http.StatusOK, "Patient mappings retrieved successfully", res)
}

// DeleteMapping removes a doctor assignment
// @Summary Remove doctor from patient
// @Tags Mappings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Mapping ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mappings/{id} [delete]
func (h *MappingHandler) DeleteMapping(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := parseUUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid mapping ID")
		return
	}

	if err := h.mappingUsecase.DeleteMapping(r.Context(), id, userID); err != nil {
		h.writeError(w, err, "Failed to delete mapping")
		return
	}

	response.Success(w, http.StatusOK, "Mapping deleted successfully", nil)
}

func (h *MappingHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrMappingNotFound):
		response.NotFound(w, "Mapping not found")
	case errors.Is(err, usecase.ErrPatientAccessDenied):
		response.Forbidden(w, "You do not have access to this patient")
	case errors.Is(err, usecase.ErrMappingAccessDenied):
		response.Forbidden(w, "You do not have access to this mapping")
	case errors.Is(err, usecase.ErrMappingAlreadyExists):
		response.Conflict(w, "Doctor is already assigned to this patient")
	case writeDomainValidation(w, err):
	default:
		response.InternalServerError(w, fallback)
	}
}
