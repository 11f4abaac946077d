package payroll

type HeaderResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employeeId"`
	PeriodID        string  `json:"periodId"`
	PayDate         string  `json:"payDate"`
	Status          string  `json:"status"`
	GrossPay        *string `json:"grossPay,omitempty"`
	TotalDeductions *string `json:"totalDeductions,omitempty"`
	NetPay          *string `json:"netPay,omitempty"`
}

func mapToResponse(h Header) HeaderResponse {
	resp := HeaderResponse{
		ID:         h.ID.String(),
		EmployeeID: h.EmployeeID.String(),
		PeriodID:   h.PeriodID.String(),
		PayDate:    h.PayDate.Format("2006-01-02"),
		Status:     h.Status,
	}
	if h.GrossPay.Valid {
		v := h.GrossPay.Decimal.StringFixed(2)
		resp.GrossPay = &v
	}
	if h.TotalDeductions.Valid {
		v := h.TotalDeductions.Decimal.StringFixed(2)
		resp.TotalDeductions = &v
	}
	if h.NetPay.Valid {
		v := h.NetPay.Decimal.StringFixed(2)
		resp.NetPay = &v
	}
	return resp
}

func mapToListResponse(headers []Header) []HeaderResponse {
	resp := make([]HeaderResponse, len(headers))
	for i, h := range headers {
		resp[i] = mapToResponse(h)
	}
	return resp
}
