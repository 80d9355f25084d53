package model

import "time"

// Outcome classifies how a proxied lookup ended.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeValidationError Outcome = "validation_error"
	OutcomeUpstreamError   Outcome = "upstream_error"
	OutcomeTransportError  Outcome = "transport_error"
)

// Lookup is the audit record of one proxied request. No upstream payload is stored.
type Lookup struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Resource  Resource  `gorm:"size:64;index;not null" json:"resource"`
	Param     string    `gorm:"size:256;not null" json:"param"`
	Status    int       `gorm:"not null" json:"status"`
	Outcome   Outcome   `gorm:"size:32;index;not null" json:"outcome"`
	LatencyMS int64     `gorm:"not null" json:"latencyMs"`
	CreatedAt time.Time `gorm:"index;not null" json:"createdAt"`
}

// LookupStat aggregates lookups per resource and outcome.
type LookupStat struct {
	Resource Resource `json:"resource"`
	Outcome  Outcome  `json:"outcome"`
	Total    int64    `json:"total"`
}
