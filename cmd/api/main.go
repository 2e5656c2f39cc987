package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/config"
	appHTTP "github.com/worktrace-hq/worktrace-backend-go/internal/handler/http"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/cron"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/jwt"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/sse"
	"github.com/worktrace-hq/worktrace-backend-go/internal/repository/postgresql"
	attendanceService "github.com/worktrace-hq/worktrace-backend-go/internal/service/attendance"
	geofenceService "github.com/worktrace-hq/worktrace-backend-go/internal/service/geofence"
	leaveService "github.com/worktrace-hq/worktrace-backend-go/internal/service/leave"
	notificationService "github.com/worktrace-hq/worktrace-backend-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	punchRepo := postgresql.NewPunchRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	entitlementRuleRepo := postgresql.NewEntitlementRuleRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	applicationRepo := postgresql.NewApplicationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	zoneRepo := postgresql.NewZoneRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	auditLogger := postgresql.NewAuditLogRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	geofenceSvc := geofenceService.NewGeofenceService(zoneRepo)
	balanceSvc := leaveService.NewBalanceService(db, leaveTypeRepo, entitlementRuleRepo, balanceRepo, employeeRepo, auditLogger)
	leaveSvc := leaveService.NewLeaveService(
		db,
		leaveTypeRepo,
		balanceRepo,
		applicationRepo,
		holidayRepo,
		employeeRepo,
		balanceSvc,
		auditLogger,
		notifService,
		cfg.Leave.DefaultMinNoticeDays,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		punchRepo,
		summaryRepo,
		employeeRepo,
		geofenceSvc,
		auditLogger,
		notifService,
		cfg,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, JWTService)
	geofenceHandler := appHTTP.NewGeofenceHandler(geofenceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)
	activityHandler := appHTTP.NewActivityHandler(auditLogger)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("auto-punch-out", time.Hour, func(ctx context.Context) error {
		yesterday := time.Now().AddDate(0, 0, -1)
		report, err := attendanceSvc.RunAutoPunchOut(ctx, yesterday)
		if err != nil {
			return err
		}
		if report.Processed > 0 || report.Failed > 0 {
			slog.Info("Auto punch-out completed",
				"date", report.Date,
				"processed", report.Processed,
				"failed", report.Failed,
				"repeat_offenders", len(report.RepeatOffenders),
			)
		}
		return nil
	})
	scheduler.Start()

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		leaveHandler,
		notificationHandler,
		geofenceHandler,
		employeeHandler,
		activityHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	scheduler.Stop()
	notifService.Stop()
}
