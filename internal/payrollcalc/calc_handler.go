package payrollcalc

import (
	"net/http"

	"salary-system/internal/shared/apperror"
	"salary-system/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

type calculateBatchRequest struct {
	PayrollIDs []string `json:"payrollIds" binding:"required,min=1,dive,uuid"`
	Save       *bool    `json:"save"`
}

type calculateByPeriodRequest struct {
	EmployeeIDs []string `json:"employeeIds" binding:"omitempty,dive,uuid"`
	Save        *bool    `json:"save"`
}

// save defaults to true; a preview run opts out explicitly.
func saveRequested(save *bool) bool {
	return save == nil || *save
}

// Preview computes totals without saving, for the review screen.
func (h *Handler) Preview(c *gin.Context) {
	payrollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapped := apperror.ToHTTP(apperror.InvalidField("id"))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), payrollID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) Calculate(c *gin.Context) {
	payrollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapped := apperror.ToHTTP(apperror.InvalidField("id"))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	result, err := h.service.CalculateAndSave(c.Request.Context(), payrollID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) CalculateBatch(c *gin.Context) {
	var req calculateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	ids := make([]uuid.UUID, len(req.PayrollIDs))
	for i, raw := range req.PayrollIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			mapped := apperror.ToHTTP(apperror.InvalidField("payrollIds"))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
			return
		}
		ids[i] = id
	}

	result, err := h.service.CalculateBatch(c.Request.Context(), ids, saveRequested(req.Save))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) CalculateByPeriod(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("periodId"))
	if err != nil {
		mapped := apperror.ToHTTP(apperror.InvalidField("periodId"))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	// The body is optional; an empty POST means "everyone, and save".
	var req calculateByPeriodRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			mapped := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
			return
		}
	}

	employeeIDs := make([]uuid.UUID, 0, len(req.EmployeeIDs))
	for _, raw := range req.EmployeeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			mapped := apperror.ToHTTP(apperror.InvalidField("employeeIds"))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
			return
		}
		employeeIDs = append(employeeIDs, id)
	}

	result, err := h.service.CalculateByPeriod(c.Request.Context(), periodID, employeeIDs, saveRequested(req.Save))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}
