// Package transport defines the request and response DTOs of the quote API.
package transport

import (
	"time"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/repository"
)

// SubmitQuoteRequest is the public intake payload. The website's older
// forms post "category" and "specifications" instead of "product" and
// "message"; both spellings are accepted.
type SubmitQuoteRequest struct {
	Name           string `json:"name" form:"name"`
	Email          string `json:"email" form:"email"`
	Phone          string `json:"phone" form:"phone"`
	Company        string `json:"company" form:"company"`
	Product        string `json:"product" form:"product"`
	Category       string `json:"category" form:"category"`
	Quantity       string `json:"quantity" form:"quantity"`
	Unit           string `json:"unit" form:"unit"`
	Message        string `json:"message" form:"message"`
	Specifications string `json:"specifications" form:"specifications"`
	Location       string `json:"location" form:"location"`
	RequiredDate   string `json:"required_date" form:"required_date"`
	Notes          string `json:"notes" form:"notes"`
}

// Submission maps the request onto the pipeline's input, resolving the
// legacy field aliases.
func (r SubmitQuoteRequest) Submission(clientIP, userAgent string) quote.Submission {
	product := r.Product
	if product == "" {
		product = r.Category
	}
	message := r.Message
	if message == "" {
		message = r.Specifications
	}
	return quote.Submission{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Company:      r.Company,
		Product:      product,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		Message:      message,
		Location:     r.Location,
		RequiredDate: r.RequiredDate,
		Notes:        r.Notes,
		ClientIP:     clientIP,
		UserAgent:    userAgent,
	}
}

// SubmitQuoteResponse echoes the accepted submission back to the caller.
type SubmitQuoteResponse struct {
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Product   string `json:"product"`
}

// NewSubmitQuoteResponse builds the response payload from an accepted record.
func NewSubmitQuoteResponse(record quote.Record) SubmitQuoteResponse {
	return SubmitQuoteResponse{
		ID:        record.ID,
		Timestamp: record.DisplayTime,
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
		Product:   record.Product,
	}
}

// UpdateStatusRequest updates the workflow status of a stored quote.
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=pending contacted quoted converted rejected"`
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"pages"`
}

// ListQuotesResponse is the paginated admin listing payload.
type ListQuotesResponse struct {
	Quotes     []repository.StoredQuote `json:"quotes"`
	Pagination Pagination               `json:"pagination"`
}

// HealthResponse reports service liveness and dependency status.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
