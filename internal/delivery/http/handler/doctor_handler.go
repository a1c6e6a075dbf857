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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// CreateDoctor handles creating a new doctor
// @Summary Create doctor
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors [post]
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateDoctorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Normalize()
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.doctorUsecase.CreateDoctor(r.Context(), userID, &req)
	if err != nil {
		if !writeDomainValidation(w, err) {
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", res)
}

// GetAllDoctors handles listing doctors, optionally filtered by specialization
// @Summary List doctors
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param specialization query string false "Specialization substring"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	filter := dto.DoctorFilterRequest{
		Specialization: r.URL.Query().Get("specialization"),
	}
	if err := h.validator.Validate(&filter); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.doctorUsecase.GetAllDoctors(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", res)
}

// GetDoctor handles getting a doctor by ID
// @Summary Get doctor by ID
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	res, err := h.doctorUsecase.GetDoctor(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", res)
}

// UpdateDoctor handles updating a doctor
// @Summary Update doctor
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [put]
func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := parseUUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Normalize()
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.doctorUsecase.UpdateDoctor(r.Context(), id, userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", res)
}

// DeleteDoctor handles deleting a doctor
// @Summary Delete doctor
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [delete]
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := parseUUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), id, userID); err != nil {
		h.writeError(w, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrEmptyUpdate):
		response.BadRequest(w, "No fields to update")
	case writeDomainValidation(w, err):
	default:
		response.InternalServerError(w, fallback)
	}
}
