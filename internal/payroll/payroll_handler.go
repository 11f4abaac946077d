package payroll

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

func (h *Handler) GetByID(c *gin.Context) {
	payrollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapped := apperror.ToHTTP(apperror.InvalidField("id"))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), payrollID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByPeriod(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("periodId"))
	if err != nil {
		mapped := apperror.ToHTTP(apperror.InvalidField("periodId"))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.GetByPeriod(c.Request.Context(), periodID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
