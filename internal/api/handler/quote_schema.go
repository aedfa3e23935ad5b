package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/export"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type staffingRequest struct {
	Role         string   `json:"role"          validate:"required"`
	Level        string   `json:"level"         validate:"required,oneof=junior mid senior expert"`
	Quantity     int      `json:"quantity"      validate:"min=0"`
	DefaultPrice *float64 `json:"default_price" validate:"omitempty,gt=0"`
}

type createQuoteRequest struct {
	ClientName          string            `json:"client_name"          validate:"required"`
	ProjectType         string            `json:"project_type"         validate:"required,oneof=PROYECTO STAFFING SOSTENIMIENTO"`
	ServiceType         string            `json:"service_type"`
	TechnicalParameters json.RawMessage   `json:"technical_parameters" swaggertype:"object"`
	Staffing            []staffingRequest `json:"staffing"             validate:"dive"`
	DiagramDefinition   string            `json:"diagram_definition"`
	BoardItemID         string            `json:"board_item_id"`
}

// normalize folds the enumerated fields to their canonical case before validation.
func (r *createQuoteRequest) normalize() {
	r.ProjectType = strings.ToUpper(strings.TrimSpace(r.ProjectType))
	for i := range r.Staffing {
		r.Staffing[i].Level = strings.ToLower(strings.TrimSpace(r.Staffing[i].Level))
	}
}

type reviewQuoteRequest struct {
	Status string `json:"status" validate:"required"`
}

type quoteLinks struct {
	Self   string `json:"self"`
	Export string `json:"export"`
}

type quoteResponse struct {
	ID                   string                `json:"id"`
	ClientName           string                `json:"client_name"`
	ProjectType          string                `json:"project_type"`
	ServiceType          string                `json:"service_type"`
	TechnicalParameters  json.RawMessage       `json:"technical_parameters,omitempty" swaggertype:"object"`
	EstimatedCost        float64               `json:"estimated_cost"`
	StaffingRequirements []domain.StaffingLine `json:"staffing_requirements"`
	DiagramDefinition    string                `json:"diagram_definition,omitempty"`
	Status               string                `json:"status"`
	UserID               string                `json:"user_id"`
	BoardItemID          string                `json:"board_item_id,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
	Links                quoteLinks            `json:"_links"`
}

type listQuotesResponse struct {
	Items      []quoteResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type exportResponse struct {
	QuoteID  string          `json:"quote_id"`
	Document export.Document `json:"document"`
}

type quoteEventResponse struct {
	Source    string         `json:"source"`
	Actor     string         `json:"actor,omitempty"`
	Fields    map[string]any `json:"fields"`
	Timestamp time.Time      `json:"timestamp"`
}

type messageResponse struct {
	Message string `json:"message"`
}
