package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Toy represents a toy (brinquedo) in the catalog.
type Toy struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"nome" gorm:"column:nome;not null"`
	Category       string    `json:"categoria" gorm:"column:categoria;not null"`
	RecommendedAge *string   `json:"idade_recomendada" gorm:"column:idade_recomendada"`
	Price          float64   `json:"preco" gorm:"column:preco;not null"`
	Description    *string   `json:"descricao" gorm:"column:descricao;type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime;index"`
}

// TableName keeps the Portuguese table name used by the hosted database.
func (Toy) TableName() string { return "brinquedos" }

// CreateToyRequest is the body accepted by POST /api/brinquedos.
// Every field may arrive as a JSON string or number.
type CreateToyRequest struct {
	Name           LooseValue `json:"nome"`
	Category       LooseValue `json:"categoria"`
	RecommendedAge LooseValue `json:"idade_recomendada"`
	Price          LooseValue `json:"preco"`
	Description    LooseValue `json:"descricao"`
}

// LooseValue holds the textual form of a JSON string or number.
// A JSON null or an absent field leaves it unset.
type LooseValue struct {
	Text string
	Set  bool
}

// Loose builds a set LooseValue, mostly useful in tests and clients.
func Loose(s string) LooseValue {
	return LooseValue{Text: s, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *LooseValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = LooseValue{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = LooseValue{Text: s, Set: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", data)
	}
	*v = LooseValue{Text: n.String(), Set: true}
	return nil
}

// MarshalJSON implements json.Marshaler. Unset values encode as null.
func (v LooseValue) MarshalJSON() ([]byte, error) {
	if !v.Set {
		return []byte("null"), nil
	}
	return json.Marshal(v.Text)
}
