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

	"github.com/eecglobaldev/Payroll-system-sub001/internal/config"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	appHTTP "github.com/eecglobaldev/Payroll-system-sub001/internal/handler/http"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/cache"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/cron"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/jwt"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/storage"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/repository/postgresql"
	attendanceService "github.com/eecglobaldev/Payroll-system-sub001/internal/service/attendance"
	leaveService "github.com/eecglobaldev/Payroll-system-sub001/internal/service/leave"
	payrollService "github.com/eecglobaldev/Payroll-system-sub001/internal/service/payroll"
	shiftService "github.com/eecglobaldev/Payroll-system-sub001/internal/service/shift"
	"github.com/go-chi/httplog/v3"
	"github.com/shopspring/decimal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	// Optional tables are probed once; the flags never change at runtime.
	cfg.Features.OvertimeTable, err = db.TableExists(ctx, "overtime_toggles")
	if err != nil {
		logger.Error("failed to probe optional tables", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var sharedCache cache.Cache = cache.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   "payroll:",
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", slog.String("error", err.Error()))
		} else {
			defer redisCache.Close()
			sharedCache = redisCache
		}
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL, cfg.Storage.SigningKey)
	if err != nil {
		logger.Error("failed to initialize local storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Repositories
	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	punchRepo := postgresql.NewPunchLogRepository(db)
	holidayRepo := attendanceService.NewCachedHolidayRepository(postgresql.NewHolidayRepository(db), sharedCache, logger)
	regularizationRepo := postgresql.NewRegularizationRepository(db)
	entitlementRepo := postgresql.NewEntitlementRepository(db)
	usageRepo := postgresql.NewMonthlyUsageRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	holdRepo := postgresql.NewHoldRepository(db)

	var overtimeRepo attendance.OvertimeRepository
	if cfg.Features.OvertimeTable {
		overtimeRepo = postgresql.NewOvertimeRepository(db)
	} else {
		logger.Warn("overtime_toggles table missing, overtime disabled")
		overtimeRepo = attendanceService.NewDisabledOvertimeRepository()
	}

	// Services
	p := cfg.Payroll
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	shiftSvc := shiftService.NewShiftService(shiftRepo, assignmentRepo, employeeRepo, sharedCache, p.DefaultShiftName, logger)
	leaveSvc := leaveService.NewLeaveService(tx, entitlementRepo, usageRepo, employeeRepo, holidayRepo, leaveService.NewLedgerCalculator(), logger)
	attendanceSvc := attendanceService.NewAttendanceService(
		punchRepo,
		holidayRepo,
		regularizationRepo,
		overtimeRepo,
		employeeRepo,
		shiftSvc,
		leaveSvc,
		attendance.Policy{
			FullDayMinHours:           p.FullDayMinHours,
			HalfDayMinHours:           p.HalfDayMinHours,
			EarlyExitToleranceMinutes: p.EarlyExitToleranceMinutes,
			LateTierMinorMinutes:      p.LateTierMinorMinutes,
			LateTierMajorMinutes:      p.LateTierMajorMinutes,
			WeekoffMinWorkedDays:      p.WeekoffMinWorkedDays,
			LateTierOnHalfDays:        p.LateDeductOnHalfDays,
		},
		logger,
	)
	regularizationSvc := attendanceService.NewRegularizationService(tx, regularizationRepo, employeeRepo, logger)
	payrollSvc := payrollService.NewPayrollService(
		tx,
		salaryRepo,
		adjustmentRepo,
		holdRepo,
		overtimeRepo,
		employeeRepo,
		attendanceSvc,
		leaveSvc,
		payroll.Policy{
			LateGraceCount:         p.LateGraceCount,
			OvertimeRateMultiplier: decimal.NewFromFloat(p.OvertimeRateMultiplier),
			AutoHoldNegativeNet:    p.AutoHoldNegativeNet,
		},
		p.BatchConcurrency,
		logger,
	)
	payslipSvc := payrollService.NewPayslipService(salaryRepo, holdRepo, employeeRepo, fileStorage, p.CompanyName, logger)

	// Background jobs
	scheduler := cron.NewScheduler(logger)
	cron.NewPayrollJobs(payrollSvc, p.DraftRefreshInterval, logger).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(logger, cfg.App.AllowedOrigins, JWTService, appHTTP.Handlers{
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc, payslipSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, regularizationSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Files:      appHTTP.NewFileHandler(fileStorage),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// batch calculation and exports can take a while
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", slog.String("error", err.Error()))
		}
	}()

	logger.Info("payroll API listening",
		slog.String("addr", server.Addr),
		slog.Bool("overtime_enabled", cfg.Features.OvertimeTable),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(app config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(app.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll"),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)
}
