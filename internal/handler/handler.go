package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/workhive-dev/hr-admin/backend/internal/config"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
	"github.com/workhive-dev/hr-admin/backend/internal/repository"
	"github.com/workhive-dev/hr-admin/backend/internal/rotation"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	auditChannel *amqp.Channel
	redisClient  *redis.Client
	engine       *rotation.Engine

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, auditCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		auditChannel: auditCh,
		redisClient:  rdb,
		engine:       rotation.NewEngine(repo),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires an authenticated admin
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))

		r.Get("/me", h.Me)

		// company-scoped admin surface
		r.Group(func(r chi.Router) {
			r.Use(h.companyScope)

			r.Route("/attendance-settings", func(r chi.Router) {
				r.Get("/", h.GetAttendanceSettings)
				r.Put("/", h.UpdateAttendanceSettings)

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", h.GetAllShifts)
					r.Post("/", h.CreateShift)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.shiftCtx)
						r.Get("/", h.GetShift)
						r.Put("/", h.UpdateShift)
						r.Delete("/", h.DeleteShift)
						r.Post("/set-default", h.SetDefaultShift)
					})
				})

				r.Get("/shift-assignments", h.GetAssignments)

				r.Route("/shift-rotations", func(r chi.Router) {
					r.Get("/", h.GetAllRotations)
					r.Post("/", h.CreateRotation)
					r.Post("/run", h.RunRotation)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.rotationCtx)
						r.Delete("/", h.DeleteRotation)
					})
				})
			})

			r.Route("/leave-settings", func(r chi.Router) {
				r.Route("/leave-types", func(r chi.Router) {
					r.Get("/", h.GetAllLeaveTypes)
					r.Post("/", h.CreateLeaveType)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.leaveTypeCtx)
						r.Get("/", h.GetLeaveType)
						r.Put("/", h.UpdateLeaveType)
						r.Delete("/", h.DeleteLeaveType)
						r.Post("/archive", h.ArchiveLeaveType)
						r.Post("/restore", h.RestoreLeaveType)
					})
				})
				r.Route("/general-settings", func(r chi.Router) {
					r.Get("/", h.GetLeaveGeneralSettings)
					r.Post("/", h.UpdateLeaveGeneralSettings)
				})
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.GetAllExpenses)
				r.Post("/", h.CreateExpense)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.expenseCtx)
					r.Get("/", h.GetExpense)
					r.Put("/", h.UpdateExpense)
					r.Delete("/", h.DeleteExpense)
					r.Post("/approve", h.ApproveExpense)
					r.Post("/reject", h.RejectExpense)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", h.GetDashboard)
				r.Post("/todo", h.SaveTodo)
				r.Put("/todo/{id}", h.UpdateTodo)
				r.Delete("/todo/{id}", h.DeleteTodo)
				r.Post("/sticky-note", h.SaveStickyNote)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.GetAllEmployees)
				r.Post("/", h.CreateEmployee)
			})
		})
	})
}
