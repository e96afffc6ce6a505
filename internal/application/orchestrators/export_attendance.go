package orchestrators

import (
	"context"
	"io"
	"log/slog"

	"indvend/internal/application/workspace"
	"indvend/internal/domain/attendance"
)

// ExportAttendanceDeps holds dependencies for ExportAttendance.
type ExportAttendanceDeps struct {
	Workspace *workspace.Workspace
}

// ExecuteExportAttendance writes the device's whole ledger as CSV.
// The export is not scoped to the requesting user.
// POST: w holds the header plus one row per record; returns the row count
func ExecuteExportAttendance(ctx context.Context, w io.Writer, deps ExportAttendanceDeps) (int, error) {
	s := deps.Workspace.Snapshot()
	if err := attendance.EncodeCSV(w, s.Ledger); err != nil {
		return 0, err
	}
	slog.Info("export_event", "event", "attendance_exported", "device_id", s.DeviceID, "records", len(s.Ledger))
	return len(s.Ledger), nil
}
