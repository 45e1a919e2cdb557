package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "координаты цели"},
		{name: "empty string", content: ""},
		{name: "long content", content: "Вижу технику на позиции, две единицы, движутся на север"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)
			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	if IDFromContent("content1") == IDFromContent("content2") {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestMessage_Fingerprint(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	a := &Message{Timestamp: ts, Body: "пеленг", Area: "Север", Frequency: 145.5}
	b := &Message{Timestamp: ts, Body: "пеленг", Area: "Север", Frequency: 145.5, CallSigns: []string{"Гром"}}
	c := &Message{Timestamp: ts, Body: "пеленг", Area: "Юг", Frequency: 145.5}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("call-signs should not affect the fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different areas should produce different fingerprints")
	}
}

func TestMessage_HasCallSign(t *testing.T) {
	msg := &Message{CallSigns: []string{"Гром", "Сокол"}}
	if !msg.HasCallSign("Сокол") {
		t.Error("expected Сокол to be a participant")
	}
	if msg.HasCallSign("сокол") {
		t.Error("call-sign matching should be exact")
	}
}

func TestKeyword_Score(t *testing.T) {
	k := Keyword{Term: "раненый", Frequency: 3, Weight: 2.0}
	if k.Score() != 6.0 {
		t.Errorf("expected score 6.0, got %f", k.Score())
	}
}
