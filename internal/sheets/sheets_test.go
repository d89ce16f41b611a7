package sheets

import (
	"testing"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
)

func TestRowColumnOrder(t *testing.T) {
	record := quote.Record{
		DisplayTime:  "15/03/2025, 03:00:00 pm",
		Name:         "Raj Patel",
		Email:        "raj@example.com",
		Phone:        "9876543210",
		Company:      "Patel Constructions",
		Product:      "MS Angle",
		Quantity:     "500",
		Unit:         "kg",
		Message:      "Urgent requirement",
		Location:     "Ahmedabad",
		RequiredDate: "2025-04-01",
		Notes:        "call after 5pm",
		Status:       quote.StatusPending,
	}

	want := []interface{}{
		"15/03/2025, 03:00:00 pm",
		"Raj Patel",
		"raj@example.com",
		"9876543210",
		"Patel Constructions",
		"MS Angle",
		"500",
		"kg",
		"Urgent requirement",
		"Ahmedabad",
		"2025-04-01",
		"call after 5pm",
		"Pending",
	}

	got := Row(record)
	if len(got) != len(want) {
		t.Fatalf("row has %d columns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRowFillsOptionalColumns(t *testing.T) {
	record := quote.Record{
		DisplayTime: "15/03/2025, 03:00:00 pm",
		Name:        "Raj Patel",
		Email:       "raj@example.com",
		Phone:       "9876543210",
		Company:     "N/A",
		Product:     "MS Angle",
		Status:      quote.StatusPending,
	}

	row := Row(record)
	// Columns G through L are optional and must render as N/A, never blank.
	for i := 6; i <= 11; i++ {
		if row[i] != "N/A" {
			t.Errorf("column %d = %v, want N/A", i, row[i])
		}
	}
}

func TestDisplayStatus(t *testing.T) {
	if got := displayStatus(quote.StatusConverted); got != "Converted" {
		t.Fatalf("displayStatus = %q", got)
	}
	if got := displayStatus(quote.Status("")); got != "" {
		t.Fatalf("displayStatus(empty) = %q", got)
	}
}
