package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/flash-erp/erp-backend-go/internal/config"
	"github.com/flash-erp/erp-backend-go/internal/domain/attendance"
	"github.com/flash-erp/erp-backend-go/internal/domain/employee"
	"github.com/flash-erp/erp-backend-go/internal/domain/payroll"
	appHTTP "github.com/flash-erp/erp-backend-go/internal/handler/http"
	"github.com/flash-erp/erp-backend-go/internal/pkg/database"
	"github.com/flash-erp/erp-backend-go/internal/pkg/jwt"
	"github.com/flash-erp/erp-backend-go/internal/repository/postgresql"
	"github.com/flash-erp/erp-backend-go/internal/repository/sqlite"
	attendanceService "github.com/flash-erp/erp-backend-go/internal/service/attendance"
	employeeService "github.com/flash-erp/erp-backend-go/internal/service/employee"
	payrollService "github.com/flash-erp/erp-backend-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	employee   employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	payroll    payroll.PayrollRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Database.SQLitePath)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			employee:   sqlite.NewEmployeeRepository(store),
			attendance: sqlite.NewAttendanceRepository(store),
			payroll:    sqlite.NewPayrollRepository(store),
			close:      func() { store.Close() },
		}, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return repositories{}, err
		}
		if cfg.App.Migrate {
			if err := postgresql.Migrate(ctx, db); err != nil {
				db.Close()
				return repositories{}, err
			}
		}
		return repositories{
			employee:   postgresql.NewEmployeeRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			payroll:    postgresql.NewPayrollRepository(db),
			close:      db.Close,
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "flash-erp"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("error connecting to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(repos.payroll, repos.employee, repos.attendance)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance)
	employeeSvc := employeeService.NewEmployeeService(repos.employee)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		payrollHandler,
		attendanceHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server running", "addr", "http://localhost"+port, "driver", cfg.Database.Driver)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server error", "error", err)
	}
}
