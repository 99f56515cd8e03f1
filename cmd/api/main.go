package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/fleetops/attendance-backend-go/internal/config"
	attendanceDomain "github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	trendDomain "github.com/fleetops/attendance-backend-go/internal/domain/trend"
	appHTTP "github.com/fleetops/attendance-backend-go/internal/handler/http"
	"github.com/fleetops/attendance-backend-go/internal/pkg/assetlabel"
	"github.com/fleetops/attendance-backend-go/internal/pkg/cron"
	"github.com/fleetops/attendance-backend-go/internal/pkg/database"
	"github.com/fleetops/attendance-backend-go/internal/pkg/jwt"
	"github.com/fleetops/attendance-backend-go/internal/pkg/timeparse"
	"github.com/fleetops/attendance-backend-go/internal/pkg/usagefile"
	"github.com/fleetops/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/fleetops/attendance-backend-go/internal/service/attendance"
	authService "github.com/fleetops/attendance-backend-go/internal/service/auth"
	reportService "github.com/fleetops/attendance-backend-go/internal/service/report"
	trendService "github.com/fleetops/attendance-backend-go/internal/service/trend"
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

	usageRepo := postgresql.NewDailyUsageRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	extractor, err := assetlabel.NewExtractorFromFile(cfg.Ingest.PatternRules)
	if err != nil {
		log.Fatal("Failed to load asset pattern rules: ", err)
	}
	reader := usagefile.NewReader(cfg.Ingest.ExportDir, cfg.Ingest.HeaderSkipLines)

	classifierCfg, err := buildClassifierConfig(cfg.Shift)
	if err != nil {
		log.Fatal("Invalid shift configuration: ", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(usageRepo, reportRepo, extractor, reader, classifierCfg)
	trendSvc := trendService.NewTrendService(attendanceSvc, usageRepo, trendDomain.Config{
		ChronicLateThreshold:     cfg.Trend.ChronicLateThreshold,
		RepeatedAbsenceThreshold: cfg.Trend.RepeatedAbsenceThreshold,
		UnstableShiftMinutes:     cfg.Trend.UnstableShiftMinutes,
	})
	reportSvc := reportService.NewReportService(reportRepo)
	authSvc := authService.NewAuthService(jwtService, cfg.Auth.AccessKeyHash)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	trendHandler := appHTTP.NewTrendHandler(trendSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		trendHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	ingestJobs := cron.NewIngestJobs(attendanceSvc, cfg.Ingest.IntervalMinutes)
	ingestJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func buildClassifierConfig(shift config.ShiftConfig) (attendanceDomain.ClassifierConfig, error) {
	expectedStart, err := timeparse.Parse(shift.ExpectedStart)
	if err != nil {
		return attendanceDomain.ClassifierConfig{}, fmt.Errorf("invalid EXPECTED_SHIFT_START %q: %w", shift.ExpectedStart, err)
	}
	expectedEnd, err := timeparse.Parse(shift.ExpectedEnd)
	if err != nil {
		return attendanceDomain.ClassifierConfig{}, fmt.Errorf("invalid EXPECTED_SHIFT_END %q: %w", shift.ExpectedEnd, err)
	}

	return attendanceDomain.ClassifierConfig{
		ExpectedStart:     expectedStart,
		ExpectedEnd:       expectedEnd,
		LateGraceMinutes:  shift.LateGraceMinutes,
		EarlyGraceMinutes: shift.EarlyGraceMinutes,
		ShortDayMinutes:   shift.ShortDayMinutes,
		LongDayMinutes:    shift.LongDayMinutes,
	}, nil
}
