package models

import "time"

// ServiceDescriptor is the public shape of one configured service line.
type ServiceDescriptor struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Counters []string `json:"counters"`
}

// WaitingEntry is a ticket that has been issued but not yet called.
type WaitingEntry struct {
	Number    int       `json:"Q_number"`
	Name      string    `json:"name"`
	Counter   string    `json:"counter,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CalledEntry is the "now calling" ticket of a service.
type CalledEntry struct {
	Number        int       `json:"Q_number"`
	Name          string    `json:"name"`
	Counter       string    `json:"counter,omitempty"`
	CalledAt      time.Time `json:"called_at"`
	Transferred   bool      `json:"transferred"`
	TransferredTo string    `json:"transferred_to,omitempty"`
}

// HistoryEntry is a completed visit. History is kept newest-first and
// truncated beyond the configured limit.
type HistoryEntry struct {
	Number          int       `json:"Q_number"`
	Name            string    `json:"name"`
	Service         string    `json:"service"`
	Transferred     bool      `json:"transferred"`
	TransferredTo   string    `json:"transferred_to,omitempty"`
	CompletedBy     string    `json:"completed_by,omitempty"`
	CompletedByName string    `json:"completed_by_name,omitempty"`
	CompletedAt     time.Time `json:"completed_at"`
}
