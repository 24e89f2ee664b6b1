package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/roosterplan/backend/internal/domain"
	"github.com/roosterplan/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	h.successResponse(w, r, "ok", employee)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username               string  `json:"username" validate:"required"`
		FullName               string  `json:"fullName" validate:"required"`
		Email                  string  `json:"email" validate:"required,email"`
		Role                   string  `json:"role" validate:"required,oneof=employee planner admin"`
		ManagesOwnAvailability bool    `json:"managesOwnAvailability"`
		MaxHoursPerDay         float64 `json:"maxHoursPerDay" validate:"gte=0,lte=24"`
		MaxHoursPerWeek        float64 `json:"maxHoursPerWeek" validate:"gte=0,lte=168"`
		HomeAddress            string  `json:"homeAddress"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewEmployee.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employee := &domain.Employee{
		Username:               req.Username,
		PasswordHash:           string(hashedPassword),
		FullName:               req.FullName,
		Email:                  req.Email,
		Role:                   domain.Role(req.Role),
		ManagesOwnAvailability: req.ManagesOwnAvailability,
		MaxHoursPerDay:         req.MaxHoursPerDay,
		MaxHoursPerWeek:        req.MaxHoursPerWeek,
		HomeAddress:            req.HomeAddress,
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "employees_username_key":
				h.errorResponse(w, r, http.StatusConflict, "username already exists")
			case "employees_email_key":
				h.errorResponse(w, r, http.StatusConflict, "email already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifier.Notify(employee.ID, domain.NotificationAccountCreated,
		"Your account", "An account has been created for you.", "",
		domain.AccountCreatedData{
			FullName: employee.FullName,
			Username: employee.Username,
			Password: password,
		})

	h.successResponse(w, r, "employee created", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	var req struct {
		Email                  *string  `json:"email" validate:"omitempty,email"`
		Role                   *string  `json:"role" validate:"omitempty,oneof=employee planner admin"`
		ManagesOwnAvailability *bool    `json:"managesOwnAvailability"`
		MaxHoursPerDay         *float64 `json:"maxHoursPerDay" validate:"omitempty,gte=0,lte=24"`
		MaxHoursPerWeek        *float64 `json:"maxHoursPerWeek" validate:"omitempty,gte=0,lte=168"`
		HomeAddress            *string  `json:"homeAddress"`
		IsActive               *bool    `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Role != nil {
		employee.Role = domain.Role(*req.Role)
	}
	if req.ManagesOwnAvailability != nil {
		employee.ManagesOwnAvailability = *req.ManagesOwnAvailability
	}
	if req.MaxHoursPerDay != nil {
		employee.MaxHoursPerDay = *req.MaxHoursPerDay
	}
	if req.MaxHoursPerWeek != nil {
		employee.MaxHoursPerWeek = *req.MaxHoursPerWeek
	}
	if req.HomeAddress != nil {
		employee.HomeAddress = *req.HomeAddress
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "employees_email_key":
				h.errorResponse(w, r, http.StatusConflict, "email already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "employee updated", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if employee.Username == h.config.InitialAdmin.Username {
		h.errorResponse(w, r, http.StatusForbidden, "the initial admin cannot be deleted")
		return
	}

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee deleted", nil)
}

func (h *Handler) SetEmployeeLabels(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	var req struct {
		LabelIDs []int64 `json:"labelIDs" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.SetEmployeeLabels(employee.ID, req.LabelIDs); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "employee_object_labels_object_label_id_fkey":
				h.errorResponse(w, r, http.StatusBadRequest, "unknown label id")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	labels, err := h.repository.GetEmployeeLabels(employee.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "labels updated", labels)
}
