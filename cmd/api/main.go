package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/config"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/dynamodb"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/employee"
	evaluationService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/evaluation"
	learningService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/learning"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/report"
	timesheetService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/timesheet"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openBackend connects the configured store backend. The returned closer releases its connection.
func openBackend(ctx context.Context, cfg *config.Config) (kv.Backend, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return memory.NewBackend(), func() {}, nil

	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		backend := postgresql.NewKVBackend(db)
		if err := backend.EnsureSchema(ctx); err != nil {
			db.Pool.Close()
			return nil, nil, err
		}
		return backend, db.Pool.Close, nil

	case config.StoreSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		backend := sqlite.NewKVBackend(db)
		if err := backend.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return backend, func() { db.Close() }, nil

	case config.StoreMongoDB:
		db, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Close(closeCtx); err != nil {
				slog.Warn("Failed to close MongoDB client", "error", err)
			}
		}
		return mongodb.NewKVBackend(db.DB), closer, nil

	case config.StoreDynamoDB:
		client, err := database.NewDynamoDBClient(ctx, database.DynamoConfig{
			Region:    cfg.Dynamo.Region,
			Endpoint:  cfg.Dynamo.Endpoint,
			AccessKey: cfg.Dynamo.AccessKey,
			SecretKey: cfg.Dynamo.SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		backend := dynamodb.NewKVBackend(client, cfg.Dynamo.Table)
		if err := backend.EnsureTable(ctx); err != nil {
			return nil, nil, err
		}
		return backend, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
}

func run(ctx context.Context, cfg *config.Config) error {
	loc, err := worktime.ParseOffset(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	calendar := worktime.NewCalendar(loc)

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	defer closeBackend()
	slog.Info("Store backend ready", "backend", cfg.Store.Backend)

	store := kv.NewStore(backend)
	employeeRepo := kv.NewEmployeeRepository(store)
	attendanceRepo := kv.NewAttendanceRepository(store)
	timesheetRepo := kv.NewTimesheetRepository(store)
	evaluationRepo := kv.NewEvaluationRepository(store)
	leaveRequestRepo := kv.NewLeaveRequestRepository(store)
	logRepo := kv.NewLogRepository(store)
	settingsRepo := kv.NewSettingsRepository(store)
	credentialStore := kv.NewCredentialStore(employeeRepo, settingsRepo)

	fileStorage, err := storage.Open(ctx, storage.Config{
		Backend:   cfg.Storage.Backend,
		LocalPath: cfg.Storage.LocalPath,
		BaseURL:   cfg.Storage.BaseURL,
		S3: storage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Prefix:    cfg.Storage.S3Prefix,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	senders := notify.Multi{}
	if cfg.Telegram.Enabled() {
		telegram, err := notify.NewTelegramSender(cfg.Telegram.Token, cfg.Telegram.ChatID,
			notification.TypeAttendanceClockIn, notification.TypeAttendanceClockOut, notification.TypeTimesheetSubmitted)
		if err != nil {
			return fmt.Errorf("failed to initialize telegram sender: %w", err)
		}
		senders = append(senders, telegram)
	}
	if cfg.SMTP.Enabled() {
		senders = append(senders, notify.NewEmailSender(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
		}, func(ctx context.Context, employeeID string) (string, string, error) {
			e, err := employeeRepo.GetByID(ctx, employeeID)
			if err != nil {
				return "", "", err
			}
			return e.Email, e.Name, nil
		}))
	}

	hub := sse.NewHub(16)
	notifSvc := notificationService.NewNotificationService(hub, senders, notificationService.Config{})
	defer notifSvc.Stop()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(store, attendanceRepo, employeeRepo, notifSvc, calendar, time.Now)
	timesheetSvc := timesheetService.NewTimesheetService(
		store,
		timesheetRepo,
		attendanceRepo,
		employeeRepo,
		notifSvc,
		calendar,
		timesheetService.Policy{
			StrictReview:      cfg.Timesheet.StrictReview,
			RefreshOnResubmit: cfg.Timesheet.RefreshOnResubmit,
		},
		time.Now,
	)
	employeeSvc := employeeService.NewEmployeeService(
		store,
		employeeRepo,
		attendanceRepo,
		timesheetRepo,
		evaluationRepo,
		leaveRequestRepo,
		logRepo,
		credentialStore,
	)
	authSvc := serviceAuth.NewAuthService(store, employeeRepo, settingsRepo, credentialStore, JWTService)
	requestService := leave.NewRequestService(store, leaveRequestRepo, employeeRepo, time.Now)
	leaveSvc := leave.NewLeaveService(leaveRequestRepo, employeeRepo, requestService, notifSvc)
	evaluationSvc := evaluationService.NewEvaluationService(store, evaluationRepo, employeeRepo)
	learningSvc := learningService.NewLearningService(store, logRepo, employeeRepo, time.Now)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, attendanceRepo, employeeRepo, timesheetRepo, leaveRequestRepo, calendar, time.Now)
	reportSvc := reportService.NewReportService(attendanceSvc, timesheetSvc, employeeRepo, fileStorage, calendar, time.Now)

	if cfg.App.SeedDemo {
		seeder := fixtures.Seeder{
			EmployeeRepo:      employeeRepo,
			EmployeeService:   employeeSvc,
			AttendanceService: attendanceSvc,
			EvaluationService: evaluationSvc,
		}
		if _, err := seeder.Seed(ctx, calendar.DayKey(time.Now())); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(reportSvc, calendar, time.Now).RegisterJobs(scheduler, cfg.Cron.ArchiveInterval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
			Timesheet:  appHTTP.NewTimesheetHandler(timesheetSvc),
			Leave:      appHTTP.NewLeaveHandler(leaveSvc),
			Evaluation: appHTTP.NewEvaluationHandler(evaluationSvc),
			Learning:   appHTTP.NewLearningHandler(learningSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
			Events:     appHTTP.NewEventsHandler(notifSvc, JWTService),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
