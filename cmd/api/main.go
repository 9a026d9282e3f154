package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/teamtracker/teamtracker-backend-go/internal/config"
	appHTTP "github.com/teamtracker/teamtracker-backend-go/internal/handler/http"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/cron"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/database"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/jwt"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/metrics"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/sse"
	"github.com/teamtracker/teamtracker-backend-go/internal/repository/postgresql"
	attendanceService "github.com/teamtracker/teamtracker-backend-go/internal/service/attendance"
	authService "github.com/teamtracker/teamtracker-backend-go/internal/service/auth"
	shiftService "github.com/teamtracker/teamtracker-backend-go/internal/service/shift"
	userService "github.com/teamtracker/teamtracker-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	pingRepo := postgresql.NewPingRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	appMetrics := metrics.New()
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		sessionRepo,
		pingRepo,
		shiftRepo,
		userRepo,
		hub,
		appMetrics,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	userHandler := appHTTP.NewUserHandler(userSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, jwtService, hub)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(sessionRepo, cfg.App.StaleSessionAge).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		userHandler,
		shiftHandler,
		attendanceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
