package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/attendance"
	"github.com/flash-erp/erp-backend-go/internal/domain/employee"
	"github.com/flash-erp/erp-backend-go/internal/domain/payroll"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	newID          func() (uuid.UUID, error)
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		newID:          uuid.NewV7,
	}
}

// operatorFromContext returns the username of the authenticated operator, if any.
func operatorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

// ========== RANGE REPORT ==========

func (s *PayrollServiceImpl) RangeReport(ctx context.Context, req payroll.RangeReportRequest) (payroll.Report, error) {
	if err := req.Validate(); err != nil {
		return payroll.Report{}, err
	}

	period, err := payroll.ParsePeriod(req.FromDate, req.ToDate)
	if err != nil {
		return payroll.Report{}, err
	}

	month := req.Month
	if month == "" {
		month = period.MonthLabel()
	}

	in := payroll.RosterInput{Period: period, Month: month}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		employees, err := s.employeeRepo.ListForPayroll(gctx, period.Cutoff())
		if err != nil {
			return fmt.Errorf("load roster: %w", err)
		}
		in.Employees = employees
		return nil
	})
	g.Go(func() error {
		records, err := s.attendanceRepo.ListByDateRange(gctx, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("load attendance: %w", err)
		}
		in.Attendance = records
		return nil
	})
	g.Go(func() error {
		entries, err := s.payrollRepo.GetSheetEntriesByPeriod(gctx, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("load sheet entries: %w", err)
		}
		in.SheetEntries = entries
		return nil
	})
	g.Go(func() error {
		advances, err := s.payrollRepo.GetAdvanceDeductionsByMonth(gctx, month)
		if err != nil {
			return fmt.Errorf("load advance deductions: %w", err)
		}
		in.Advances = advances
		return nil
	})
	if err := g.Wait(); err != nil {
		return payroll.Report{}, err
	}

	report := payroll.AggregateRoster(in)

	slog.Info("payroll range report computed",
		"from_date", req.FromDate,
		"to_date", req.ToDate,
		"month", month,
		"employees", report.Summary.Employees,
		"working_days", report.Summary.WorkingDays,
		"total_net", report.Summary.TotalNet.StringFixed(2),
		"warnings", report.Summary.Warnings,
	)
	if report.Summary.Warnings > 0 {
		slog.Warn("payroll range report skipped or merged input records",
			"from_date", req.FromDate,
			"to_date", req.ToDate,
			"warnings", report.Summary.Warnings,
		)
	}

	return report, nil
}

// ========== SHEET ENTRIES ==========

func (s *PayrollServiceImpl) GetSheetEntry(ctx context.Context, key payroll.SheetEntryKey) (payroll.SheetEntryResponse, error) {
	if err := key.Validate(); err != nil {
		return payroll.SheetEntryResponse{}, err
	}
	from, to, err := keyDates(key)
	if err != nil {
		return payroll.SheetEntryResponse{}, err
	}

	entry, err := s.payrollRepo.GetSheetEntry(ctx, key.EmployeeDBID, from, to)
	if err != nil {
		return payroll.SheetEntryResponse{}, err
	}

	return toSheetEntryResponse(entry), nil
}

func (s *PayrollServiceImpl) UpsertSheetEntry(ctx context.Context, req payroll.UpsertSheetEntryRequest) (payroll.SheetEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SheetEntryResponse{}, err
	}
	from, to, err := keyDates(req.SheetEntryKey)
	if err != nil {
		return payroll.SheetEntryResponse{}, err
	}

	id, err := s.newID()
	if err != nil {
		return payroll.SheetEntryResponse{}, fmt.Errorf("generate sheet entry id: %w", err)
	}

	saved, err := s.payrollRepo.UpsertSheetEntry(ctx, payroll.SheetEntry{
		ID:                  id.String(),
		EmployeeDBID:        req.EmployeeDBID,
		FromDate:            from,
		ToDate:              to,
		PreDays:             req.PreDays,
		CurDays:             req.CurDays,
		LeaveEncashmentDays: req.LeaveEncashmentDays,
		AllowOther:          req.AllowOther,
		EOBI:                req.EOBI,
		Tax:                 req.Tax,
		FineAdvExtra:        req.FineAdvExtra,
		Remarks:             req.Remarks,
		BankCash:            req.BankCash,
	})
	if err != nil {
		return payroll.SheetEntryResponse{}, err
	}

	slog.Info("payroll sheet entry saved",
		"employee_db_id", saved.EmployeeDBID,
		"from_date", req.FromDate,
		"to_date", req.ToDate,
		"operator", operatorFromContext(ctx),
	)

	return toSheetEntryResponse(saved), nil
}

func (s *PayrollServiceImpl) DeleteSheetEntry(ctx context.Context, key payroll.SheetEntryKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	from, to, err := keyDates(key)
	if err != nil {
		return err
	}

	if err := s.payrollRepo.DeleteSheetEntry(ctx, key.EmployeeDBID, from, to); err != nil {
		return err
	}

	slog.Info("payroll sheet entry deleted",
		"employee_db_id", key.EmployeeDBID,
		"from_date", key.FromDate,
		"to_date", key.ToDate,
		"operator", operatorFromContext(ctx),
	)
	return nil
}

// ========== ADVANCE DEDUCTIONS ==========

func (s *PayrollServiceImpl) ListAdvanceDeductions(ctx context.Context, month string) ([]payroll.AdvanceDeductionResponse, error) {
	if err := payroll.ValidateMonth(month); err != nil {
		return nil, err
	}

	deductions, err := s.payrollRepo.GetAdvanceDeductionsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.AdvanceDeductionResponse, 0, len(deductions))
	for _, d := range deductions {
		responses = append(responses, toAdvanceDeductionResponse(d))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) UpsertAdvanceDeduction(ctx context.Context, req payroll.UpsertAdvanceDeductionRequest) (payroll.AdvanceDeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdvanceDeductionResponse{}, err
	}

	id, err := s.newID()
	if err != nil {
		return payroll.AdvanceDeductionResponse{}, fmt.Errorf("generate advance deduction id: %w", err)
	}

	saved, err := s.payrollRepo.UpsertAdvanceDeduction(ctx, payroll.AdvanceDeduction{
		ID:           id.String(),
		EmployeeDBID: req.EmployeeDBID,
		Month:        req.Month,
		Amount:       req.Amount,
		Note:         req.Note,
	})
	if err != nil {
		return payroll.AdvanceDeductionResponse{}, err
	}

	slog.Info("advance deduction saved",
		"employee_db_id", saved.EmployeeDBID,
		"month", saved.Month,
		"amount", saved.Amount.String(),
		"operator", operatorFromContext(ctx),
	)

	return toAdvanceDeductionResponse(saved), nil
}

// ========== HELPERS ==========

func keyDates(key payroll.SheetEntryKey) (time.Time, time.Time, error) {
	from, err := time.Parse(payroll.DateLayout, key.FromDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse from_date: %w", err)
	}
	to, err := time.Parse(payroll.DateLayout, key.ToDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse to_date: %w", err)
	}
	return from, to, nil
}

func toSheetEntryResponse(e payroll.SheetEntry) payroll.SheetEntryResponse {
	return payroll.SheetEntryResponse{
		ID:                  e.ID,
		EmployeeDBID:        e.EmployeeDBID,
		FromDate:            e.FromDate.Format(payroll.DateLayout),
		ToDate:              e.ToDate.Format(payroll.DateLayout),
		PreDays:             e.PreDays,
		CurDays:             e.CurDays,
		LeaveEncashmentDays: e.LeaveEncashmentDays,
		AllowOther:          e.AllowOther,
		EOBI:                e.EOBI,
		Tax:                 e.Tax,
		FineAdvExtra:        e.FineAdvExtra,
		Remarks:             e.Remarks,
		BankCash:            e.BankCash,
		UpdatedAt:           e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toAdvanceDeductionResponse(d payroll.AdvanceDeduction) payroll.AdvanceDeductionResponse {
	return payroll.AdvanceDeductionResponse{
		ID:           d.ID,
		EmployeeDBID: d.EmployeeDBID,
		Month:        d.Month,
		Amount:       d.Amount,
		Note:         d.Note,
		UpdatedAt:    d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
