package model

import "github.com/shopspring/decimal"

// Employee

type Employee struct {
	EmployeeID   int64           `json:"employeeId"`
	EmployeeCode string          `json:"employeeCode"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	FullName     string          `json:"fullName"`
	Designation  string          `json:"designation"`
	Department   string          `json:"department"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	HireDate     string          `json:"hireDate"`
	SalaryBase   decimal.Decimal `json:"salaryBase"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	UpdatedAt    string          `json:"updatedAt,omitempty"`
}

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employeeCode" validate:"required"`
	FirstName    string  `json:"firstName" validate:"required"`
	LastName     string  `json:"lastName" validate:"required"`
	Designation  string  `json:"designation"`
	Department   string  `json:"department"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email" validate:"omitempty,email"`
	HireDate     string  `json:"hireDate" validate:"required"`
	SalaryBase   float64 `json:"salaryBase" validate:"gte=0"`
}

type UpdateEmployeeRequest struct {
	FirstName   *string  `json:"firstName,omitempty"`
	LastName    *string  `json:"lastName,omitempty"`
	Designation *string  `json:"designation,omitempty"`
	Department  *string  `json:"department,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Email       *string  `json:"email,omitempty" validate:"omitempty,email"`
	HireDate    *string  `json:"hireDate,omitempty"`
	SalaryBase  *float64 `json:"salaryBase,omitempty" validate:"omitempty,gte=0"`
}

// Payroll

type Payroll struct {
	PayrollID     int64           `json:"payrollId"`
	EmployeeID    int64           `json:"employeeId"`
	EmployeeName  string          `json:"employeeName"`
	PeriodStart   string          `json:"periodStart"`
	PeriodEnd     string          `json:"periodEnd"`
	GrossPay      decimal.Decimal `json:"grossPay"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetPay        decimal.Decimal `json:"netPay"`
	PaymentDate   string          `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	IsPaid        bool            `json:"isPaid"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

// CreatePayrollRequest. NetPay is recomputed by the backend.
type CreatePayrollRequest struct {
	EmployeeID    int64   `json:"employeeId" validate:"required,gt=0"`
	PeriodStart   string  `json:"periodStart" validate:"required"`
	PeriodEnd     string  `json:"periodEnd" validate:"required"`
	GrossPay      float64 `json:"grossPay" validate:"gte=0"`
	Deductions    float64 `json:"deductions" validate:"gte=0"`
	NetPay        float64 `json:"netPay"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Duty

const (
	DutyAssigned   = "assigned"
	DutyInProgress = "in-progress"
	DutyCompleted  = "completed"
	DutyCancelled  = "cancelled"
)

type EmployeeDuty struct {
	DutyID              int64   `json:"dutyId"`
	EmployeeID          int64   `json:"employeeId"`
	EmployeeName        string  `json:"employeeName"`
	TaskType            string  `json:"taskType"`
	SalesOrderID        *int64  `json:"salesOrderId"`
	SalesOrderNumber    *string `json:"salesOrderNumber"`
	PurchaseOrderID     *int64  `json:"purchaseOrderId"`
	PurchaseOrderNumber *string `json:"purchaseOrderNumber"`
	StartDate           string  `json:"startDate"`
	EndDate             *string `json:"endDate"`
	Status              string  `json:"status"`
	Notes               string  `json:"notes"`
	CreatedAt           string  `json:"createdAt,omitempty"`
	UpdatedAt           string  `json:"updatedAt,omitempty"`
}

type AssignDutyRequest struct {
	TaskType        string `json:"taskType" validate:"required"`
	SalesOrderID    *int64 `json:"salesOrderId,omitempty"`
	PurchaseOrderID *int64 `json:"purchaseOrderId,omitempty"`
	StartDate       string `json:"startDate" validate:"required"`
	Notes           string `json:"notes"`
}

// User

type User struct {
	UserID          int64   `json:"userId"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	FullName        string  `json:"fullName"`
	RoleID          int64   `json:"roleId"`
	RoleName        string  `json:"roleName"`
	RoleDescription string  `json:"roleDescription"`
	IsActive        bool    `json:"isActive"`
	LastLogin       *string `json:"lastLogin"`
	CreatedBy       *int64  `json:"createdBy"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedBy       *int64  `json:"updatedBy"`
	UpdatedAt       *string `json:"updatedAt"`
}

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	RoleID    int64  `json:"roleId" validate:"required,gt=0"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	RoleID    *int64  `json:"roleId,omitempty"`
}

type UserStatus struct {
	UserID   int64  `json:"userId"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	IsActive bool   `json:"isActive"`
}
