// Package export renders the current data set into a spreadsheet snapshot
// for the property staff. The whole workbook is rewritten on every export.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"pousada/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	sheetBookings = "Bookings"
	sheetRooms    = "Rooms"
	sheetGuests   = "Guests"
)

// Snapshot is the full data set to be rendered.
type Snapshot struct {
	Guests   []models.Guest
	Rooms    []models.Room
	Bookings []models.Booking
}

// ExcelWriter writes snapshots to a single xlsx file, replacing it in place.
type ExcelWriter struct {
	path string
}

func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{path: path}
}

// Path returns the target file location.
func (w *ExcelWriter) Path() string {
	return w.path
}

// Write renders the snapshot and saves the workbook atomically enough for
// our purposes: excelize builds in memory and saves in one pass.
func (w *ExcelWriter) Write(snapshot Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	guestNames := make(map[string]string, len(snapshot.Guests))
	for _, g := range snapshot.Guests {
		guestNames[g.ID] = g.Name
	}

	if err := w.writeBookings(f, snapshot.Bookings, guestNames); err != nil {
		return err
	}
	if err := w.writeRooms(f, snapshot.Rooms); err != nil {
		return err
	}
	if err := w.writeGuests(f, snapshot.Guests); err != nil {
		return err
	}

	// The default sheet excelize creates is replaced by Bookings.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetBookings); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writeBookings(f *excelize.File, bookings []models.Booking, guestNames map[string]string) error {
	if _, err := f.NewSheet(sheetBookings); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheetBookings, err)
	}

	headers := []interface{}{"Guest", "Room", "Check-in", "Check-out", "Status", "Nightly rate", "Total", "Guests", "Notes"}
	if err := f.SetSheetRow(sheetBookings, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheetBookings, err)
	}

	for i, b := range bookings {
		row := []interface{}{
			guestNames[b.GuestID],
			b.RoomNumber,
			b.CheckIn.Format("02/01/2006"),
			b.CheckOut.Format("02/01/2006"),
			b.Status,
			b.Rate,
			b.Total,
			b.GuestCount,
			b.Notes,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetBookings, cell, &row); err != nil {
			return fmt.Errorf("write %s row: %w", sheetBookings, err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeRooms(f *excelize.File, rooms []models.Room) error {
	if _, err := f.NewSheet(sheetRooms); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheetRooms, err)
	}

	headers := []interface{}{"Number", "Type", "Floor", "Capacity", "Nightly rate", "Status"}
	if err := f.SetSheetRow(sheetRooms, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheetRooms, err)
	}

	for i, r := range rooms {
		rate := 0.0
		if r.NightlyRate != nil {
			rate = *r.NightlyRate
		}
		row := []interface{}{r.Number, r.Type, r.Floor, r.Capacity, rate, r.Status}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetRooms, cell, &row); err != nil {
			return fmt.Errorf("write %s row: %w", sheetRooms, err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeGuests(f *excelize.File, guests []models.Guest) error {
	if _, err := f.NewSheet(sheetGuests); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheetGuests, err)
	}

	headers := []interface{}{"Name", "Tax id", "Phone", "Email", "City"}
	if err := f.SetSheetRow(sheetGuests, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheetGuests, err)
	}

	for i, g := range guests {
		row := []interface{}{g.Name, g.TaxID, g.Phone, g.Email, g.City}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetGuests, cell, &row); err != nil {
			return fmt.Errorf("write %s row: %w", sheetGuests, err)
		}
	}
	return nil
}
