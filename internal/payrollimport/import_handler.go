package payrollimport

import (
	"mime/multipart"
	"net/http"
	"strings"

	importerrors "salary-system/internal/payrollimport/errors"
	"salary-system/internal/sheet"
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

func (h *Handler) writeAppError(c *gin.Context, appErr *apperror.AppError) {
	mapped := apperror.ToHTTP(appErr)
	response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
}

// openUpload pulls the .xlsx out of the multipart form.
func (h *Handler) openUpload(c *gin.Context) (multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeAppError(c, importerrors.ErrFileRequired)
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.writeAppError(c, importerrors.ErrFileRequired)
		return nil, false
	}
	return f, true
}

// parseGroups reads the comma-separated groups form field; an absent
// field means everything.
func parseGroups(c *gin.Context) []sheet.DataGroup {
	raw := strings.TrimSpace(c.PostForm("groups"))
	if raw == "" {
		return []sheet.DataGroup{sheet.GroupAll}
	}

	var groups []sheet.DataGroup
	for _, part := range strings.Split(raw, ",") {
		if g := strings.TrimSpace(part); g != "" {
			groups = append(groups, sheet.DataGroup(g))
		}
	}
	return groups
}

func (h *Handler) Import(c *gin.Context) {
	periodID, err := uuid.Parse(c.PostForm("periodId"))
	if err != nil {
		h.writeAppError(c, importerrors.ErrPeriodRequired)
		return
	}

	f, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	cfg := ImportConfig{
		PeriodID:             periodID,
		Groups:               parseGroups(c),
		ValidateBeforeImport: c.PostForm("validateBeforeImport") != "false",
	}

	result, err := h.service.ImportWorkbook(c.Request.Context(), f, cfg, nil)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		// Partial or full failure still returns the full report.
		status = http.StatusUnprocessableEntity
	}
	response.Success(c, status, result, nil)
}

func (h *Handler) Validate(c *gin.Context) {
	f, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	results, err := h.service.ValidateWorkbook(c.Request.Context(), f, parseGroups(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results, nil)
}

func (h *Handler) AnalyzeColumns(c *gin.Context) {
	group := sheet.DataGroup(c.DefaultQuery("group", string(sheet.GroupEarnings)))

	f, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	analysis, err := h.service.AnalyzeColumns(c.Request.Context(), f, group)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, analysis, nil)
}
