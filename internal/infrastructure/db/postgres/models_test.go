package postgres

import (
	"encoding/json"
	"testing"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

func TestQuoteModel_EncodesJSONColumns(t *testing.T) {
	q := &domain.Quote{
		ID:          "Q1",
		ClientName:  "Acme",
		ProjectType: domain.ProjectTypeStaffing,
		Status:      domain.StatusDraft,
		StaffingRequirements: []domain.StaffingLine{
			{Role: "QA Analyst", Level: domain.LevelMid, Quantity: 2, UnitPrice: 2100},
		},
	}

	m, err := newQuoteModel(q)
	if err != nil {
		t.Fatalf("newQuoteModel: %v", err)
	}
	if m.TechnicalParameters != nil {
		t.Fatalf("empty technical parameters should be stored as NULL")
	}

	var lines []map[string]any
	if err := json.Unmarshal(m.StaffingRequirements, &lines); err != nil {
		t.Fatalf("staffing column is not JSON: %v", err)
	}
	if lines[0]["role"] != "QA Analyst" || lines[0]["unit_price"] != 2100.0 {
		t.Fatalf("unexpected staffing encoding %v", lines)
	}
}

func TestQuoteModel_NullColumnsDecodeToEmpty(t *testing.T) {
	m := &quoteModel{ID: "Q1", Status: "ENVIADA"}
	q, err := m.toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if q.StaffingRequirements == nil || len(q.StaffingRequirements) != 0 {
		t.Fatalf("expected empty staffing slice, got %v", q.StaffingRequirements)
	}
	if q.TechnicalParameters != nil {
		t.Fatalf("expected nil technical parameters")
	}
}

func TestQuoteModel_CorruptStaffing(t *testing.T) {
	m := &quoteModel{ID: "Q1", StaffingRequirements: []byte("{")}
	if _, err := m.toDomain(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestUpdatableColumns(t *testing.T) {
	for _, col := range []string{domain.FieldStatus, domain.FieldEstimatedCost, domain.FieldServiceType} {
		if _, ok := updatableColumns[col]; !ok {
			t.Errorf("%s should be updatable", col)
		}
	}
	if _, ok := updatableColumns["user_id"]; ok {
		t.Errorf("user_id must not be updatable")
	}
}
