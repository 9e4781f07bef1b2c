package payment

import (
	"errors"
	"testing"
)

func TestWebhookRepository_RecordEvent(t *testing.T) {
	repo := NewInMemoryWebhookRepository()

	if err := repo.RecordEvent("evt_1", "checkout.session.completed"); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}

	processed, err := repo.HasProcessed("evt_1")
	if err != nil {
		t.Fatalf("HasProcessed: %v", err)
	}
	if !processed {
		t.Error("expected event to be recorded")
	}
}

func TestWebhookRepository_DuplicateEvent(t *testing.T) {
	repo := NewInMemoryWebhookRepository()

	if err := repo.RecordEvent("evt_1", "checkout.session.completed"); err != nil {
		t.Fatalf("first RecordEvent: %v", err)
	}
	if err := repo.RecordEvent("evt_1", "checkout.session.completed"); !errors.Is(err, ErrEventAlreadyProcessed) {
		t.Errorf("error = %v, want ErrEventAlreadyProcessed", err)
	}
}

func TestWebhookRepository_HasProcessed_Unknown(t *testing.T) {
	repo := NewInMemoryWebhookRepository()

	processed, err := repo.HasProcessed("evt_unknown")
	if err != nil {
		t.Fatalf("HasProcessed: %v", err)
	}
	if processed {
		t.Error("unknown event should not be processed")
	}
}
