package employee

type CreateEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name" binding:"required"`
	DepartmentID   string `json:"department_id"`
	PositionID     string `json:"position_id"`
	HireDate       string `json:"hire_date"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	DepartmentID   *string `json:"department_id,omitempty"`
	PositionID     *string `json:"position_id,omitempty"`
	HireDate       *string `json:"hire_date,omitempty"`
	Status         string  `json:"status"`
}
