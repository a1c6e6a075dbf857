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

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// CreatePatient handles creating a patient owned by the caller
// @Summary Create patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePatientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Normalize()
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.patientUsecase.CreatePatient(r.Context(), userID, &req)
	if err != nil {
		if !writeDomainValidation(w, err) {
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", res)
}

// GetMyPatients lists the patients created by the caller
// @Summary List own patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) GetMyPatients(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	res, err := h.patientUsecase.GetMyPatients(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", res)
}

// GetPatient handles getting a patient by ID
// @Summary Get patient by ID
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := parseUUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	res, err := h.patientUsecase.GetPatient(r.Context(), id, userID)
	if err != nil {
		h.writeError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", res)
}

// UpdatePatient handles partial updates of a patient.
// Ownership is decided before the payload is decoded; field rules are enforced by the usecase.
// @Summary Update patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [put]
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := parseUUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	// Settle ownership before the body is read
	if err := h.patientUsecase.CheckPatientAccess(r.Context(), id, userID); err != nil {
		h.writeError(w, err, "Failed to update patient")
		return
	}

	var req dto.UpdatePatientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Normalize()
	res, err := h.patientUsecase.UpdatePatient(r.Context(), id, userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", res)
}

// DeletePatient handles deleting a patient and its doctor assignments
// @Summary Delete patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [delete]
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := parseUUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), id, userID); err != nil {
		h.writeError(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrPatientAccessDenied):
		response.Forbidden(w, "You do not have access to this patient")
	case errors.Is(err, usecase.ErrEmptyUpdate):
		response.BadRequest(w, "No fields to update")
	case writeDomainValidation(w, err):
	default:
		response.InternalServerError(w, fallback)
	}
}
