package ws

import (
	"encoding/json"

	"github.com/smartq/backend/internal/models"
)

// Envelope constructors marshal once so a broadcast fans the same bytes out
// to every viewer.

type queueUpdateMsg struct {
	Type  string                `json:"type"`
	Queue []models.WaitingEntry `json:"queue"`
}

type currentMsg struct {
	Type string              `json:"type"`
	Item *models.CalledEntry `json:"item"`
}

type historyMsg struct {
	Type    string                `json:"type"`
	History []models.HistoryEntry `json:"history"`
}

type statusMsg struct {
	Type           string `json:"type"`
	Online         int    `json:"online"`
	QueueLength    int    `json:"queue_length"`
	ProcessedCount int    `json:"processed_count"`
	Muted          bool   `json:"muted"`
}

type audioMsg struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type completeMsg struct {
	Type   string `json:"type"`
	Number int    `json:"Q_number"`
}

func QueueUpdate(queue []models.WaitingEntry) []byte {
	if queue == nil {
		queue = []models.WaitingEntry{}
	}
	b, _ := json.Marshal(queueUpdateMsg{Type: "queue_update", Queue: queue})
	return b
}

func Current(item *models.CalledEntry) []byte {
	b, _ := json.Marshal(currentMsg{Type: "current", Item: item})
	return b
}

func History(history []models.HistoryEntry) []byte {
	if history == nil {
		history = []models.HistoryEntry{}
	}
	b, _ := json.Marshal(historyMsg{Type: "history", History: history})
	return b
}

func Status(online, queueLength, processedCount int, muted bool) []byte {
	b, _ := json.Marshal(statusMsg{
		Type:           "status",
		Online:         online,
		QueueLength:    queueLength,
		ProcessedCount: processedCount,
		Muted:          muted,
	})
	return b
}

// Audio carries synthesized announcement bytes; data is base64 on the wire.
func Audio(data []byte) []byte {
	b, _ := json.Marshal(audioMsg{Type: "audio", Data: data})
	return b
}

func Complete(number int) []byte {
	b, _ := json.Marshal(completeMsg{Type: "complete", Number: number})
	return b
}
