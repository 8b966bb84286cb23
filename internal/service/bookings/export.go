package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
)

const exportSheet = "Bookings"

var exportHeader = []interface{}{
	"ID", "Date", "Time slot", "Customer", "Phone", "Location", "Package", "BBQ count",
	"Status", "Payment", "Delivery", "Assigned BBQ", "Cleanup", "Started", "Finished", "Notes",
}

// Export выгружает бронирования за период в XLSX
func (s *Service) Export(ctx context.Context, req *models.ExportRequest) ([]byte, error) {
	filter := domain.BookingFilter{IncludeCancelled: true}

	if req.From != nil {
		from, err := domain.ParseCalendarDay(*req.From, s.settings.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from %q", ErrInvalidInput, *req.From)
		}
		filter.From = &from
	}
	if req.To != nil {
		to, err := domain.ParseCalendarDay(*req.To, s.settings.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to %q", ErrInvalidInput, *req.To)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: from is after to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	data, err := buildWorkbook(bookings)
	if err != nil {
		s.logger.Error("Export: failed to build workbook: %v", err)
		return nil, fmt.Errorf("%w: Export - workbook: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d bookings", len(bookings))
	return data, nil
}

func buildWorkbook(bookings []*domain.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
		_ = f.SetCellStyle(exportSheet, "A1", lastCell, style)
	}

	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			b.ID,
			b.Date.Format(domain.DateFormat),
			b.TimeSlot.String(),
			b.CustomerName,
			b.CustomerPhone,
			b.LocationID,
			b.PackageID,
			b.BBQCount,
			string(b.Status),
			string(b.PaymentStatus),
			string(b.DeliveryStatus),
			optionalInt(b.AssignedBBQID),
			cleanupCell(b),
			optionalTime(b.ActualStartTime),
			optionalTime(b.ActualEndTime),
			optionalString(b.Notes),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 8)
	_ = f.SetColWidth(exportSheet, "B", "P", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optionalInt(v *int64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func cleanupCell(b *domain.Booking) string {
	if !b.CleanupContribution || b.CleanupAmount == nil {
		return ""
	}
	return b.CleanupAmount.StringFixed(2)
}
