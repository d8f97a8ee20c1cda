package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	addClosedDayHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/add_closed_day"
	createAppointmentHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/create_appointment"
	createServiceHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/create_service"
	createWorkstationHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/create_workstation"
	deleteClosedDayHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/delete_closed_day"
	getAppointmentHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/get_available_slots"
	getSalonAppointmentsHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/get_salon_appointments"
	getSalonCatalogHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/get_salon_catalog"
	getScheduleHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/get_schedule"
	updateAppointmentHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/update_appointment"
	updateScheduleHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/update_schedule"
	updateServiceHandler "github.com/salonhub/salon-booking-service/internal/api/handlers/update_service"
	"github.com/salonhub/salon-booking-service/internal/api/middleware"
	"github.com/salonhub/salon-booking-service/internal/config"
	appointmentRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/catalog"
	salonRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/salon"
	scheduleRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/schedule"
	"github.com/salonhub/salon-booking-service/internal/integrations/mailer"
	reminderJob "github.com/salonhub/salon-booking-service/internal/jobs/reminder"
	appointmentsService "github.com/salonhub/salon-booking-service/internal/service/appointments"
	catalogService "github.com/salonhub/salon-booking-service/internal/service/catalog"
	scheduleService "github.com/salonhub/salon-booking-service/internal/service/schedule"
	createAppointmentUC "github.com/salonhub/salon-booking-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/salonhub/salon-booking-service/internal/usecase/get_available_slots"
	updateAppointmentUC "github.com/salonhub/salon-booking-service/internal/usecase/update_appointment"
	"github.com/salonhub/salon-booking-service/pkg/dbmetrics"
	"github.com/salonhub/salon-booking-service/pkg/logger"
	"github.com/salonhub/salon-booking-service/pkg/metrics"
	"github.com/salonhub/salon-booking-service/pkg/simpletxmanager"
	"github.com/salonhub/salon-booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Почтовый клиент: реальный SendGrid или заглушка
	type Mailer interface {
		SendConfirmation(ctx context.Context, email mailer.AppointmentEmail) error
		SendReschedule(ctx context.Context, email mailer.AppointmentEmail) error
		SendCancellation(ctx context.Context, email mailer.AppointmentEmail) error
		SendReminder(ctx context.Context, email mailer.AppointmentEmail) error
	}
	var mailClient Mailer

	if cfg.Mailer.Enabled {
		mailClient = mailer.NewClient(cfg.Mailer.APIKey, cfg.Mailer.FromName, cfg.Mailer.FromEmail, log)
		log.Info("Mailer enabled (from=%s <%s>)", cfg.Mailer.FromName, cfg.Mailer.FromEmail)
	} else {
		mailClient = mailer.NewNoop(log)
		log.Info("Mailer disabled, email notifications are skipped")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		catalogRepository     *catalogRepo.Repository
		salonRepository       *salonRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		salonRepository = salonRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		salonRepository = salonRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, salonRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		scheduleRepository,
		salonRepository,
		mailClient,
		txMgr,
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		scheduleRepository,
		salonRepository,
		mailClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		salonRepository,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSalonCatalog := getSalonCatalogHandler.NewHandler(catalogSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	addClosedDay := addClosedDayHandler.NewHandler(scheduleSvc, log)
	deleteClosedDay := deleteClosedDayHandler.NewHandler(scheduleSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	createWorkstation := createWorkstationHandler.NewHandler(catalogSvc, log)

	// Фоновая рассылка напоминаний (если включена)
	var cronScheduler *cron.Cron
	if cfg.Jobs.ReminderEnabled {
		job := reminderJob.NewJob(appointmentRepository, salonRepository, mailClient, log)

		cronScheduler = cron.New()
		if _, err := cronScheduler.AddJob(cfg.Jobs.ReminderCron, job); err != nil {
			log.Fatal("Failed to schedule reminder job: %v", err)
		}
		cronScheduler.Start()
		log.Info("Reminder job scheduled (%s)", cfg.Jobs.ReminderCron)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/salons/{salonId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Публичный каталог салона
	api.HandleFunc("/salons/{salonId}/catalog",
		getSalonCatalog.Handle).Methods(http.MethodGet)

	// Недельное расписание салона
	api.HandleFunc("/salons/{salonId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Обновление записи: перенос, смена статуса, отмена
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)

	// Список записей салона с фильтрами
	protected.HandleFunc("/salons/{salonId}/appointments", getSalonAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием ---
	// Полная замена недельного расписания
	protected.HandleFunc("/salons/{salonId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Добавление закрытой даты
	protected.HandleFunc("/salons/{salonId}/closed-days", addClosedDay.Handle).Methods(http.MethodPost)

	// Удаление закрытой даты
	protected.HandleFunc("/salons/{salonId}/closed-days/{closedDayId}", deleteClosedDay.Handle).Methods(http.MethodDelete)

	// --- Управление каталогом ---
	// Создание услуги
	protected.HandleFunc("/salons/{salonId}/services", createService.Handle).Methods(http.MethodPost)

	// Обновление услуги
	protected.HandleFunc("/salons/{salonId}/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)

	// Создание рабочего места
	protected.HandleFunc("/salons/{salonId}/workstations", createWorkstation.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	if cronScheduler != nil {
		<-cronScheduler.Stop().Done()
		log.Info("Reminder job stopped")
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
