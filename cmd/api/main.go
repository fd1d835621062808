package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/cron"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	approvalService "github.com/attendly/attendance-backend-go/internal/service/approval"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
	companyService "github.com/attendly/attendance-backend-go/internal/service/company"
	employeeService "github.com/attendly/attendance-backend-go/internal/service/employee"
	leaveService "github.com/attendly/attendance-backend-go/internal/service/leave"
	makeupService "github.com/attendly/attendance-backend-go/internal/service/makeup"
	notificationService "github.com/attendly/attendance-backend-go/internal/service/notification"
	overtimeService "github.com/attendly/attendance-backend-go/internal/service/overtime"
	scheduleService "github.com/attendly/attendance-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.Database.URL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	companyRepo := postgresql.NewCompanyRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	relationRepo := postgresql.NewRelationRepository(db)
	managerialRepo := postgresql.NewManagerialRelationshipRepository(db)
	assignmentRepo := postgresql.NewApproverAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	makeupRepo := postgresql.NewMakeupRepository(db)
	policyRepo := postgresql.NewApprovalPolicyRepository(db)
	stepRepo := postgresql.NewApprovalStepRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txManager := postgresql.NewTxManager(db)

	clk := clock.System()
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	flushInterval, err := time.ParseDuration(cfg.Notification.FlushInterval)
	if err != nil {
		flushInterval = 5 * time.Second
	}
	notifier := notificationService.NewService(notificationRepo, clk, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: flushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})
	defer notifier.Close()

	resolver := approvalService.NewResolver(policyRepo, relationRepo, managerialRepo, assignmentRepo, clk)
	chain := approvalService.NewChainService(stepRepo, resolver, txManager, notifier, clk)

	leaveSvc := leaveService.NewService(leaveRepo, relationRepo, ledgerRepo, chain, txManager, notifier, clk)
	overtimeSvc := overtimeService.NewService(overtimeRepo, relationRepo, ledgerRepo, chain, txManager, notifier, clk)
	makeupSvc := makeupService.NewService(makeupRepo, attendanceRepo, relationRepo, ledgerRepo, chain, txManager, notifier, clk)
	attendanceSvc := attendanceService.NewService(attendanceRepo, companyRepo, relationRepo, workScheduleRepo, clk)
	companySvc := companyService.NewService(companyRepo, clk)
	scheduleSvc := scheduleService.NewService(workScheduleRepo, clk)
	employeeSvc := employeeService.NewService(employeeRepo, relationRepo, managerialRepo, assignmentRepo, clk)
	policySvc := approvalService.NewPolicyService(policyRepo, clk)

	scheduler := cron.NewScheduler()
	entitlementJobs := cron.NewEntitlementJobs(relationRepo, leaveSvc, clk)
	scheduler.AddJob("refresh-annual-entitlements", 24*time.Hour, entitlementJobs.RefreshAnnualEntitlements)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc, clk),
		Overtime:     appHTTP.NewOvertimeHandler(overtimeSvc),
		Makeup:       appHTTP.NewMakeupHandler(makeupSvc),
		Approval:     appHTTP.NewApprovalHandler(chain),
		Notification: appHTTP.NewNotificationHandler(notifier),
		Company:      appHTTP.NewCompanyHandler(companySvc),
		Schedule:     appHTTP.NewScheduleHandler(scheduleSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Policy:       appHTTP.NewPolicyHandler(policySvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server shutdown error:", err)
	}
	fmt.Println("Server stopped")
}
