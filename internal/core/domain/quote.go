package domain

import (
	"encoding/json"
	"time"
)

// QuoteStatus is the review state of a quote. The board may send labels
// outside this set through the webhook; those are stored verbatim.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "BORRADOR"
	StatusSent     QuoteStatus = "ENVIADA"
	StatusInReview QuoteStatus = "EN_REVISION"
	StatusApproved QuoteStatus = "APROBADA"
	StatusRejected QuoteStatus = "RECHAZADA"
)

var reviewStatuses = map[QuoteStatus]struct{}{
	StatusDraft:    {},
	StatusSent:     {},
	StatusInReview: {},
	StatusApproved: {},
	StatusRejected: {},
}

// IsReviewStatus reports whether s can be set from the administrative surface.
func (s QuoteStatus) IsReviewStatus() bool {
	_, ok := reviewStatuses[s]
	return ok
}

// ProjectType classifies the kind of estimate.
type ProjectType string

const (
	ProjectTypeProject  ProjectType = "PROYECTO"
	ProjectTypeStaffing ProjectType = "STAFFING"
	ProjectTypeSustain  ProjectType = "SOSTENIMIENTO"
)

// StaffingLine is one priced role on a quote.
type StaffingLine struct {
	Role      string  `json:"role"`
	Level     Level   `json:"level"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Quote is the aggregate root of the quoting flow.
type Quote struct {
	ID                   string          `json:"id"`
	ClientName           string          `json:"client_name"`
	ProjectType          ProjectType     `json:"project_type"`
	ServiceType          string          `json:"service_type"`
	TechnicalParameters  json.RawMessage `json:"technical_parameters,omitempty"`
	EstimatedCost        float64         `json:"estimated_cost"`
	StaffingRequirements []StaffingLine  `json:"staffing_requirements"`
	DiagramDefinition    string          `json:"diagram_definition,omitempty"`
	Status               QuoteStatus     `json:"status"`
	UserID               string          `json:"user_id"`
	BoardItemID          string          `json:"board_item_id,omitempty"`
	PDFSnapshot          []byte          `json:"-"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Updatable quote columns. Partial updates are keyed by these names.
const (
	FieldStatus        = "status"
	FieldEstimatedCost = "estimated_cost"
	FieldServiceType   = "service_type"
)

// QuoteEvent is an audit record of a change applied to a quote.
type QuoteEvent struct {
	QuoteID   string         `json:"quote_id"`
	Source    string         `json:"source"`
	Actor     string         `json:"actor,omitempty"`
	Fields    map[string]any `json:"fields"`
	Timestamp time.Time      `json:"timestamp"`
}

const (
	EventSourceWebhook = "webhook"
	EventSourceAdmin   = "admin"
)
