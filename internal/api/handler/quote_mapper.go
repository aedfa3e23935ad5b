package handler

import (
	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createQuoteRequest, owner *domain.Identity) ports.CreateQuoteInput {
	staffing := make([]ports.StaffingInput, len(req.Staffing))
	for i, s := range req.Staffing {
		staffing[i] = ports.StaffingInput{
			Role:         s.Role,
			Level:        s.Level,
			Quantity:     s.Quantity,
			DefaultPrice: s.DefaultPrice,
		}
	}
	return ports.CreateQuoteInput{
		ClientName:          req.ClientName,
		ProjectType:         req.ProjectType,
		ServiceType:         req.ServiceType,
		TechnicalParameters: req.TechnicalParameters,
		Staffing:            staffing,
		DiagramDefinition:   req.DiagramDefinition,
		BoardItemID:         req.BoardItemID,
		UserID:              owner.UserID,
		Email:               owner.Email,
	}
}

// --- Domain → Response ---

func toQuoteResponse(q *domain.Quote) quoteResponse {
	lines := q.StaffingRequirements
	if lines == nil {
		lines = []domain.StaffingLine{}
	}
	return quoteResponse{
		ID:                   q.ID,
		ClientName:           q.ClientName,
		ProjectType:          string(q.ProjectType),
		ServiceType:          q.ServiceType,
		TechnicalParameters:  q.TechnicalParameters,
		EstimatedCost:        q.EstimatedCost,
		StaffingRequirements: lines,
		DiagramDefinition:    q.DiagramDefinition,
		Status:               string(q.Status),
		UserID:               q.UserID,
		BoardItemID:          q.BoardItemID,
		CreatedAt:            q.CreatedAt,
		UpdatedAt:            q.UpdatedAt,
		Links: quoteLinks{
			Self:   "/api/quotes/" + q.ID,
			Export: "/api/quotes/" + q.ID + "/export",
		},
	}
}

func toListResponse(r *ports.ListQuotesResult) listQuotesResponse {
	items := make([]quoteResponse, len(r.Items))
	for i, q := range r.Items {
		items[i] = toQuoteResponse(q)
	}
	return listQuotesResponse{
		Items:      items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}

func toEventResponses(events []domain.QuoteEvent) []quoteEventResponse {
	out := make([]quoteEventResponse, len(events))
	for i, e := range events {
		out[i] = quoteEventResponse{
			Source:    e.Source,
			Actor:     e.Actor,
			Fields:    e.Fields,
			Timestamp: e.Timestamp,
		}
	}
	return out
}
