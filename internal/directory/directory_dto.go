package directory

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	ReportsTo  *string `json:"reports_to,omitempty"`
	HireDate   string  `json:"hire_date"`
}
