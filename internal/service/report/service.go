package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
	"github.com/tealeg/xlsx"
)

// archiveLinkExpiry bounds presigned archive links.
const archiveLinkExpiry = 24 * time.Hour

var attendanceHeader = []string{"Tanggal", "Nama", "Email", "Jabatan", "Masuk", "Pulang", "Durasi (jam)", "Catatan"}

var timesheetHeader = []string{"Tanggal", "Masuk", "Pulang", "Durasi (jam)", "Lembur (jam)", "Catatan"}

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
	timesheetService  timesheet.TimesheetService
	employeeRepo      employee.EmployeeRepository
	fileStorage       storage.FileStorage
	calendar          worktime.Calendar
	now               func() time.Time
}

func NewReportService(
	attendanceService attendance.AttendanceService,
	timesheetService timesheet.TimesheetService,
	employeeRepo employee.EmployeeRepository,
	fileStorage storage.FileStorage,
	calendar worktime.Calendar,
	now func() time.Time,
) report.ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportServiceImpl{
		attendanceService: attendanceService,
		timesheetService:  timesheetService,
		employeeRepo:      employeeRepo,
		fileStorage:       fileStorage,
		calendar:          calendar,
		now:               now,
	}
}

func (s *ReportServiceImpl) attendanceRows(ctx context.Context, caps user.Capabilities, req report.AttendanceExportRequest) ([]attendance.RangeRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.attendanceService.GetRange(ctx, caps, attendance.RangeFilter{From: req.From, To: req.To})
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	return rows, nil
}

func (s *ReportServiceImpl) attendanceCells(r attendance.RangeRow) []string {
	return []string{
		r.Date,
		r.Name,
		r.Email,
		r.Role,
		s.calendar.ClockTime(r.In),
		s.calendar.ClockTime(r.Out),
		worktime.FormatHours(r.ElapsedHours),
		notes(r.InNote, r.OutNote),
	}
}

func notes(in, out string) string {
	var parts []string
	if in != "" {
		parts = append(parts, "Masuk: "+in)
	}
	if out != "" {
		parts = append(parts, "Pulang: "+out)
	}
	return strings.Join(parts, " | ")
}

// AttendanceCSV implements report.ReportService.
func (s *ReportServiceImpl) AttendanceCSV(ctx context.Context, caps user.Capabilities, req report.AttendanceExportRequest) (report.File, error) {
	rows, err := s.attendanceRows(ctx, caps, req)
	if err != nil {
		return report.File{}, err
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, s.attendanceCells(r))
	}

	return report.File{
		Filename:    fmt.Sprintf("attendance_%s_%s.csv", req.From, req.To),
		ContentType: report.ContentTypeCSV,
		Data:        encodeCSV(attendanceHeader, cells),
		Rows:        len(rows),
	}, nil
}

// AttendanceXLSX implements report.ReportService.
func (s *ReportServiceImpl) AttendanceXLSX(ctx context.Context, caps user.Capabilities, req report.AttendanceExportRequest) (report.File, error) {
	rows, err := s.attendanceRows(ctx, caps, req)
	if err != nil {
		return report.File{}, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Kehadiran")
	if err != nil {
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	headerRow := sheet.AddRow()
	for _, header := range attendanceHeader {
		headerRow.AddCell().Value = header
	}
	for _, r := range rows {
		row := sheet.AddRow()
		for i, value := range s.attendanceCells(r) {
			cell := row.AddCell()
			if i == 6 {
				// duration stays numeric so it can be summed
				cell.SetFloatWithFormat(r.ElapsedHours, "0.00")
				continue
			}
			cell.Value = orDash(value)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.File{
		Filename:    fmt.Sprintf("attendance_%s_%s.xlsx", req.From, req.To),
		ContentType: report.ContentTypeXLSX,
		Data:        buf.Bytes(),
		Rows:        len(rows),
	}, nil
}

// EmployeesCSV implements report.ReportService.
func (s *ReportServiceImpl) EmployeesCSV(ctx context.Context) (report.File, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list employees: %w", err)
	}

	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		if e.IsIntern() {
			continue
		}
		rows = append(rows, []string{e.Name, e.Email, string(e.Role), e.StartDate, formatTarget(e)})
	}

	return report.File{
		Filename:    fmt.Sprintf("employees_hrkecil_%d.csv", s.now().UnixMilli()),
		ContentType: report.ContentTypeCSV,
		Data:        encodeCSV([]string{"Nama", "Email", "Jabatan", "Mulai", "Target Jam/Hari"}, rows),
		Rows:        len(rows),
	}, nil
}

// TimesheetCSV implements report.ReportService.
func (s *ReportServiceImpl) TimesheetCSV(ctx context.Context, caps user.Capabilities, req report.TimesheetExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}
	if !caps.Allows(req.EmployeeID) {
		return report.File{}, user.ErrOutOfScope
	}

	week, err := s.attendanceService.GetWeek(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return report.File{}, err
	}
	approval, err := s.timesheetService.GetWeek(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return report.File{}, err
	}

	rows := make([][]string, 0, len(week.Days)+3)
	for _, d := range week.Days {
		rows = append(rows, []string{
			d.Date,
			s.calendar.ClockTime(d.In),
			s.calendar.ClockTime(d.Out),
			worktime.FormatHours(d.ElapsedHours),
			worktime.FormatHours(d.OvertimeHours),
			notes(d.InNote, d.OutNote),
		})
	}
	rows = append(rows,
		[]string{"Total", "", "", worktime.FormatHours(week.TotalHours), "", ""},
		[]string{"Target", "", "", worktime.FormatHours(week.TargetHours), "", ""},
		[]string{"Status", "", "", string(approval.Status), "", approval.ApprovedBy},
	)

	return report.File{
		Filename:    fmt.Sprintf("timesheet_%s_%s.csv", req.EmployeeID, week.WeekStart),
		ContentType: report.ContentTypeCSV,
		Data:        encodeCSV(timesheetHeader, rows),
		Rows:        len(week.Days),
	}, nil
}

// InternsCSV implements report.ReportService.
func (s *ReportServiceImpl) InternsCSV(ctx context.Context) (report.File, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list employees: %w", err)
	}

	rows := make([][]string, 0)
	for _, e := range employees {
		if !e.IsIntern() {
			continue
		}
		rows = append(rows, []string{
			e.Name,
			e.Email,
			e.School,
			e.Mentor,
			e.InternshipStart,
			e.InternshipEnd,
			string(e.InternStatusOrDefault()),
			e.Stipend,
			formatTarget(e),
			strings.Join(e.Tasks, " | "),
		})
	}

	header := []string{"Nama", "Email", "Sekolah", "Mentor", "Mulai Magang", "Selesai Magang", "Status", "Uang Saku", "Target Jam/Hari", "Tugas"}
	return report.File{
		Filename:    fmt.Sprintf("interns_hrkecil_%d.csv", s.now().UnixMilli()),
		ContentType: report.ContentTypeCSV,
		Data:        encodeCSV(header, rows),
		Rows:        len(rows),
	}, nil
}

// ArchiveDay implements report.ReportService.
func (s *ReportServiceImpl) ArchiveDay(ctx context.Context, dayKey string) (report.ArchiveResult, error) {
	if _, ok := validator.IsValidDate(dayKey); !ok {
		return report.ArchiveResult{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	if s.fileStorage == nil {
		return report.ArchiveResult{}, fmt.Errorf("%w: no file storage configured", report.ErrReportGenerationFailed)
	}

	path := fmt.Sprintf("archive/attendance_%s.csv", dayKey)
	result := report.ArchiveResult{Date: dayKey, Path: path}

	exists, err := s.fileStorage.Exists(ctx, path)
	if err != nil {
		return result, fmt.Errorf("failed to check archive: %w", err)
	}
	if exists {
		result.URL = s.archiveURL(ctx, path)
		return result, nil
	}

	file, err := s.AttendanceCSV(ctx, user.Unrestricted(), report.AttendanceExportRequest{From: dayKey, To: dayKey})
	if err != nil {
		return result, err
	}
	if _, err := s.fileStorage.Upload(ctx, bytes.NewReader(file.Data), path, file.ContentType); err != nil {
		return result, fmt.Errorf("failed to upload archive: %w", err)
	}

	result.Rows = file.Rows
	result.Archived = true
	result.URL = s.archiveURL(ctx, path)
	slog.Info("Attendance archived", "date", dayKey, "path", path, "rows", file.Rows)
	return result, nil
}

// archiveURL is best effort; a missing link does not fail the archive.
func (s *ReportServiceImpl) archiveURL(ctx context.Context, path string) string {
	url, err := s.fileStorage.GetURL(ctx, path, archiveLinkExpiry)
	if err != nil {
		slog.Warn("Failed to build archive URL", "path", path, "error", err)
		return ""
	}
	return url
}

func formatTarget(e employee.Employee) string {
	return worktime.TrimHours(e.DailyTarget())
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

// encodeCSV quotes every cell and doubles embedded quotes. Empty cells become "-".
func encodeCSV(header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(orDash(c), `"`, `""`))
			buf.WriteByte('"')
		}
	}
	writeRow(header)
	for _, r := range rows {
		buf.WriteByte('\n')
		writeRow(r)
	}
	return buf.Bytes()
}
