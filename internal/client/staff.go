package client

import (
	"context"
	"net/http"

	"github.com/example/cashew-corner/internal/model"
)

const (
	employeesPath = "/employees"
	payrollsPath  = "/payrolls"
	dutiesPath    = "/duties"
	usersPath     = "/users"
)

func (c *Client) Employees() *EmployeeClient { return &EmployeeClient{c: c} }
func (c *Client) Payrolls() *PayrollClient { return &PayrollClient{c: c} }
func (c *Client) Duties() *DutyClient { return &DutyClient{c: c} }
func (c *Client) Users() *UserClient { return &UserClient{c: c} }

// Employee

type EmployeeClient struct {
	c *Client
}

func (r *EmployeeClient) List(ctx context.Context) ([]model.Employee, error) {
	return get[[]model.Employee](ctx, r.c, employeesPath, nil)
}

func (r *EmployeeClient) Get(ctx context.Context, id int64) (model.Employee, error) {
	return get[model.Employee](ctx, r.c, idPath(employeesPath, id), nil)
}

func (r *EmployeeClient) Create(ctx context.Context, req model.CreateEmployeeRequest) (model.Employee, error) {
	return call[model.Employee](ctx, r.c, http.MethodPost, employeesPath, nil, req)
}

func (r *EmployeeClient) Update(ctx context.Context, id int64, req model.UpdateEmployeeRequest) (model.Employee, error) {
	return call[model.Employee](ctx, r.c, http.MethodPut, idPath(employeesPath, id), nil, req)
}

func (r *EmployeeClient) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, idPath(employeesPath, id))
}

// Payroll

type PayrollClient struct {
	c *Client
}

func (r *PayrollClient) Create(ctx context.Context, req model.CreatePayrollRequest) (model.Payroll, error) {
	return call[model.Payroll](ctx, r.c, http.MethodPost, payrollsPath, nil, req)
}

func (r *PayrollClient) List(ctx context.Context) ([]model.Payroll, error) {
	return get[[]model.Payroll](ctx, r.c, payrollsPath, nil)
}

func (r *PayrollClient) Get(ctx context.Context, id int64) (model.Payroll, error) {
	return get[model.Payroll](ctx, r.c, idPath(payrollsPath, id), nil)
}

func (r *PayrollClient) ForEmployee(ctx context.Context, employeeID int64) ([]model.Payroll, error) {
	return get[[]model.Payroll](ctx, r.c, idPath(employeesPath, employeeID, "payrolls"), nil)
}

func (r *PayrollClient) Unpaid(ctx context.Context) ([]model.Payroll, error) {
	return get[[]model.Payroll](ctx, r.c, payrollsPath+"/unpaid", nil)
}

// Duty

type DutyClient struct {
	c *Client
}

func (r *DutyClient) Assign(ctx context.Context, employeeID int64, req model.AssignDutyRequest) (model.EmployeeDuty, error) {
	return call[model.EmployeeDuty](ctx, r.c, http.MethodPost, idPath(employeesPath, employeeID, "duties"), nil, req)
}

func (r *DutyClient) ForEmployee(ctx context.Context, employeeID int64) ([]model.EmployeeDuty, error) {
	return get[[]model.EmployeeDuty](ctx, r.c, idPath(employeesPath, employeeID, "duties"), nil)
}

// UpdateStatus sends the new status as a query parameter with an empty body
func (r *DutyClient) UpdateStatus(ctx context.Context, dutyID int64, status string) (model.EmployeeDuty, error) {
	return call[model.EmployeeDuty](ctx, r.c, http.MethodPatch, idPath(dutiesPath, dutyID, "status"), nameQuery("status", status), nil)
}

func (r *DutyClient) Get(ctx context.Context, dutyID int64) (model.EmployeeDuty, error) {
	return get[model.EmployeeDuty](ctx, r.c, idPath(dutiesPath, dutyID), nil)
}

func (r *DutyClient) Delete(ctx context.Context, dutyID int64) error {
	return r.c.delete(ctx, idPath(dutiesPath, dutyID))
}

// User

type UserClient struct {
	c *Client
}

func (r *UserClient) List(ctx context.Context) ([]model.User, error) {
	return get[[]model.User](ctx, r.c, usersPath, nil)
}

func (r *UserClient) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	return call[model.User](ctx, r.c, http.MethodPost, usersPath, nil, req)
}

func (r *UserClient) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	return call[model.User](ctx, r.c, http.MethodPut, idPath(usersPath, id), nil, req)
}

func (r *UserClient) Deactivate(ctx context.Context, id int64) (model.UserStatus, error) {
	return call[model.UserStatus](ctx, r.c, http.MethodPatch, idPath(usersPath, id, "deactivate"), nil, struct{}{})
}

func (r *UserClient) Activate(ctx context.Context, id int64) (model.UserStatus, error) {
	return call[model.UserStatus](ctx, r.c, http.MethodPatch, idPath(usersPath, id, "activate"), nil, struct{}{})
}
