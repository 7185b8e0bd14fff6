package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/wathiq-erp/attendance-engine/internal/config"
	appHTTP "github.com/wathiq-erp/attendance-engine/internal/handler/http"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/cron"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/database"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/email"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/jwt"
	"github.com/wathiq-erp/attendance-engine/internal/repository/postgresql"
	attendanceService "github.com/wathiq-erp/attendance-engine/internal/service/attendance"
	notificationService "github.com/wathiq-erp/attendance-engine/internal/service/notification"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceTypeRepo := postgresql.NewAttendanceTypeRepository(db)
	ruleRepo := postgresql.NewRuleRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	notificationSvc := notificationService.NewNotificationService(notificationRepo, emailService)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceService.Config{
			OutWindowStart:            cfg.Engine.OutWindowStart,
			OutWindowEnd:              cfg.Engine.OutWindowEnd,
			LateIssueThresholdMinutes: cfg.Engine.LateIssueThresholdMinutes,
		},
		employeeRepo,
		attendanceTypeRepo,
		ruleRepo,
		punchRepo,
		summaryRepo,
		timesheetRepo,
		notificationSvc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	punchHandler := appHTTP.NewPunchHandler(punchRepo)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Engine).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		punchHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
