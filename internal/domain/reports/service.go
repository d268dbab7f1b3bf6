package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/mozillazg/go-unidecode"

	"staffhub/internal/domain/org"
)

// Service renders exports over the org data. The roster PDF uses core
// fonts, so Cyrillic fields are transliterated for output.
type Service struct {
	employees org.EmployeeStore

	// now is a hook for tests; nil means time.Now.
	now func() time.Time
}

func NewService(employees org.EmployeeStore) *Service {
	return &Service{employees: employees}
}

// StaffRosterPDF builds a one-page-per-40-rows roster of all employees with
// their position, department and tenure display.
func (s *Service) StaffRosterPDF(ctx context.Context) ([]byte, error) {
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	asOf := s.today()

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Staff roster")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("As of %s, %d employees", asOf.Format("2006-01-02"), len(employees)))
	pdf.Ln(10)

	widths := []float64{70, 60, 60, 30, 55}
	headers := []string{"Name", "Position", "Department", "Hired", "Tenure"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, emp := range employees {
		department := ""
		if emp.Department != nil {
			department = emp.Department.Name
		}
		tenure := org.Tenure(emp.DateHired, asOf)
		cells := []string{
			unidecode.Unidecode(emp.FullName()),
			unidecode.Unidecode(emp.Position),
			unidecode.Unidecode(department),
			emp.DateHired.Format("2006-01-02"),
			unidecode.Unidecode(tenure.Display()),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render roster pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) today() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
