package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/phone"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

type adminAlertEmailData struct {
	baseEmailData
	ReceivedAt string
	Name       string
	Email      string
	Phone      string
	PhoneE164  string
	Company    string
	Product    string
	Quantity   string
	Unit       string
	Message    string
	Location   string
	Required   string
	Notes      string
}

type confirmationEmailData struct {
	baseEmailData
	Name     string
	Product  string
	Quantity string
	Unit     string
}

func newAdminAlertData(record quote.Record) adminAlertEmailData {
	return adminAlertEmailData{
		baseEmailData: baseEmailData{
			Title:   "New Quote Request",
			Heading: "New Quote Request",
		},
		ReceivedAt: record.DisplayTime,
		Name:       record.Name,
		Email:      record.Email,
		Phone:      record.Phone,
		PhoneE164:  phone.NormalizeE164(record.Phone),
		Company:    record.Company,
		Product:    record.Product,
		Quantity:   record.Quantity,
		Unit:       record.Unit,
		Message:    record.Message,
		Location:   record.Location,
		Required:   record.RequiredDate,
		Notes:      record.Notes,
	}
}

func newConfirmationData(record quote.Record) confirmationEmailData {
	return confirmationEmailData{
		baseEmailData: baseEmailData{
			Title:   "Quote Request Received",
			Heading: "Quote Request Received!",
		},
		Name:     record.Name,
		Product:  record.Product,
		Quantity: record.Quantity,
		Unit:     record.Unit,
	}
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
