package main

import (
	"fmt"
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/config"
	appHTTP "github.com/attendly/attendly-backend-go/internal/handler/http"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendly-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/attendly-backend-go/internal/service/attendance"
	leaveService "github.com/attendly/attendly-backend-go/internal/service/leave"
	zoneService "github.com/attendly/attendly-backend-go/internal/service/zone"
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

	txManager := postgresql.NewTxManager(db)
	zoneRepo := postgresql.NewZoneRepository(db)
	eventRepo := postgresql.NewAttendanceEventRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	applicationRepo := postgresql.NewLeaveApplicationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	classifier := attendanceService.Classifier{
		Location:        cfg.Attendance.Timezone,
		ThresholdHour:   cfg.Attendance.LateThresholdHour,
		ThresholdMinute: cfg.Attendance.LateThresholdMinute,
	}

	attendanceSvc := attendanceService.NewAttendanceService(txManager, eventRepo, zoneRepo, classifier)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveTypeRepo, balanceRepo, applicationRepo, cfg.Attendance.Timezone)
	zoneSvc := zoneService.NewZoneService(zoneRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	zoneHandler := appHTTP.NewZoneHandler(zoneSvc)

	router := appHTTP.NewRouter(jwtService, attendanceHandler, leaveHandler, zoneHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
