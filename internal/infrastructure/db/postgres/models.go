package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

type userModel struct {
	ID           string `gorm:"size:64;primaryKey"`
	Name         string `gorm:"size:200"`
	Email        string `gorm:"uniqueIndex;size:320;not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type rateModel struct {
	ID          string  `gorm:"size:64;primaryKey"`
	ServiceName string  `gorm:"size:200;not null;uniqueIndex:idx_rate_identity"`
	Level       string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_rate_identity"`
	Frequency   string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_rate_identity"`
	BasePrice   float64 `gorm:"not null"`
	Multiplier  float64 `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (rateModel) TableName() string { return "rate_entries" }

func (m *rateModel) toDomain() domain.RateEntry {
	return domain.RateEntry{
		ID:          m.ID,
		ServiceName: m.ServiceName,
		Level:       domain.Level(m.Level),
		BasePrice:   m.BasePrice,
		Multiplier:  m.Multiplier,
		Frequency:   domain.BillingFrequency(m.Frequency),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type quoteModel struct {
	ID                   string `gorm:"size:64;primaryKey"`
	ClientName           string `gorm:"size:200;not null"`
	ProjectType          string `gorm:"type:varchar(20);not null"`
	ServiceType          string `gorm:"size:100"`
	TechnicalParameters  []byte `gorm:"type:jsonb"`
	EstimatedCost        float64
	StaffingRequirements []byte    `gorm:"type:jsonb"`
	DiagramDefinition    string    `gorm:"type:text"`
	Status               string    `gorm:"size:50;not null;index"`
	UserID               string    `gorm:"size:64;not null;index"`
	BoardItemID          string    `gorm:"size:50"`
	PDFSnapshot          []byte    `gorm:"type:bytea"`
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
}

func (quoteModel) TableName() string { return "quotes" }

func newQuoteModel(q *domain.Quote) (*quoteModel, error) {
	staffing, err := json.Marshal(q.StaffingRequirements)
	if err != nil {
		return nil, fmt.Errorf("encode staffing: %w", err)
	}
	var technical []byte
	if len(q.TechnicalParameters) > 0 {
		technical = []byte(q.TechnicalParameters)
	}
	return &quoteModel{
		ID:                   q.ID,
		ClientName:           q.ClientName,
		ProjectType:          string(q.ProjectType),
		ServiceType:          q.ServiceType,
		TechnicalParameters:  technical,
		EstimatedCost:        q.EstimatedCost,
		StaffingRequirements: staffing,
		DiagramDefinition:    q.DiagramDefinition,
		Status:               string(q.Status),
		UserID:               q.UserID,
		BoardItemID:          q.BoardItemID,
		PDFSnapshot:          q.PDFSnapshot,
		CreatedAt:            q.CreatedAt,
		UpdatedAt:            q.UpdatedAt,
	}, nil
}

func (m *quoteModel) toDomain() (*domain.Quote, error) {
	lines := []domain.StaffingLine{}
	if len(m.StaffingRequirements) > 0 {
		if err := json.Unmarshal(m.StaffingRequirements, &lines); err != nil {
			return nil, fmt.Errorf("decode staffing of quote %s: %w", m.ID, err)
		}
	}
	var technical json.RawMessage
	if len(m.TechnicalParameters) > 0 {
		technical = json.RawMessage(m.TechnicalParameters)
	}
	return &domain.Quote{
		ID:                   m.ID,
		ClientName:           m.ClientName,
		ProjectType:          domain.ProjectType(m.ProjectType),
		ServiceType:          m.ServiceType,
		TechnicalParameters:  technical,
		EstimatedCost:        m.EstimatedCost,
		StaffingRequirements: lines,
		DiagramDefinition:    m.DiagramDefinition,
		Status:               domain.QuoteStatus(m.Status),
		UserID:               m.UserID,
		BoardItemID:          m.BoardItemID,
		PDFSnapshot:          m.PDFSnapshot,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}, nil
}
