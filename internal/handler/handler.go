package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/redis/go-redis/v9"
	"github.com/roosterplan/backend/internal/config"
	"github.com/roosterplan/backend/internal/repository"
	"github.com/roosterplan/backend/internal/scheduling"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	notifier     scheduling.Notifier
	redisClient  *redis.Client
	shifts       *scheduling.ShiftScheduler
	swaps        *scheduling.SwapRequestStateMachine
	availability *scheduling.AvailabilityResolver

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, dispatcher scheduling.Notifier, rdb *redis.Client, distance scheduling.DistanceEstimator) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	availability := scheduling.NewAvailabilityResolver(repo)
	compliance := scheduling.NewComplianceValidator(repo)
	eligibility := scheduling.NewEligibilityMatcher(repo)

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		notifier:     dispatcher,
		redisClient:  rdb,
		shifts:       scheduling.NewShiftScheduler(repo, availability, compliance, dispatcher, distance),
		swaps:        scheduling.NewSwapRequestStateMachine(repo, eligibility, dispatcher),
		availability: availability,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Everything below requires a logged-in employee.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.requireEmployeeManagement).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.requireEmployeeManagement).Patch("/", h.UpdateEmployee)
				r.With(h.requireEmployeeManagement).Delete("/", h.DeleteEmployee)
				r.With(h.requireEmployeeManagement).Put("/labels", h.SetEmployeeLabels)
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.With(h.requireShiftManagement).Post("/", h.CreateAssignment)
			r.Get("/", h.GetAllAssignments)
		})

		r.Route("/labels", func(r chi.Router) {
			r.With(h.requireShiftManagement).Post("/", h.CreateLabel)
			r.Get("/", h.GetAllLabels)
		})

		r.Route("/availability", func(r chi.Router) {
			r.Get("/resolve", h.ResolveAvailability)
			r.Route("/patterns", func(r chi.Router) {
				r.Use(h.myInfo)
				r.Get("/", h.GetMyPatterns)
				r.Put("/", h.ReplaceMyPatterns)
			})
			r.Route("/exceptions", func(r chi.Router) {
				r.Use(h.myInfo)
				r.Post("/", h.CreateException)
				r.Post("/leave", h.CreateLeaveExceptions)
				r.Delete("/leave", h.DeleteLeaveExceptions)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.GetShifts)
			r.With(h.requireShiftManagement).Post("/", h.CreateShift)
			r.Route("/{id}", func(r chi.Router) {
				r.With(h.requireShiftManagement).Patch("/", h.UpdateShift)
				r.With(h.requireShiftManagement).Delete("/", h.DeleteShift)
				r.With(h.myInfo).Post("/override-approval", h.ApproveShiftOverride)
			})
		})

		r.Route("/swap-requests", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateSwapRequest)
			r.Get("/", h.GetAllSwapRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", h.ActOnSwapRequest)
				r.Delete("/", h.ForceDeleteSwapRequest)
			})
		})
	})
}
