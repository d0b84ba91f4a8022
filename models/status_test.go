package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		current ObraStatus
		action  LifecycleAction
		want    ObraStatus
		wantErr bool
	}{
		{StatusPlanejada, ActionStart, StatusEmAndamento, false},
		{StatusPausada, ActionStart, StatusEmAndamento, false},
		{StatusEmAndamento, ActionPause, StatusPausada, false},
		{StatusEmAndamento, ActionComplete, StatusConcluida, false},

		{StatusEmAndamento, ActionStart, "", true},
		{StatusConcluida, ActionStart, "", true},
		{StatusPlanejada, ActionPause, "", true},
		{StatusPausada, ActionPause, "", true},
		{StatusConcluida, ActionPause, "", true},
		{StatusPlanejada, ActionComplete, "", true},
		{StatusPausada, ActionComplete, "", true},
		{StatusConcluida, ActionComplete, "", true},
	}

	for _, tt := range tests {
		got, err := Transition(tt.current, tt.action)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Transition(%s, %s): expected error, got %s", tt.current, tt.action, got)
			} else if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Transition(%s, %s): error %v is not ErrInvalidTransition", tt.current, tt.action, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Transition(%s, %s): unexpected error %v", tt.current, tt.action, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Transition(%s, %s) = %s, want %s", tt.current, tt.action, got, tt.want)
		}
	}
}

func TestTransitionUnknownAction(t *testing.T) {
	if _, err := Transition(StatusPlanejada, "cancel"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for unknown action, got %v", err)
	}
}

func TestAppendMotivo(t *testing.T) {
	at := time.Date(2024, 3, 15, 14, 30, 45, 0, time.Local)

	got := AppendMotivo("", at, ActionStart, "equipe mobilizada")
	want := "[15/03/2024, 14:30:45] Iniciada: equipe mobilizada"
	if got != want {
		t.Errorf("AppendMotivo on empty = %q, want %q", got, want)
	}

	got = AppendMotivo(got, at.Add(time.Hour), ActionPause, "chuva forte")
	if !strings.HasPrefix(got, want+"\n\n") {
		t.Errorf("AppendMotivo did not preserve prior content: %q", got)
	}
	if !strings.HasSuffix(got, "[15/03/2024, 15:30:45] Pausada: chuva forte") {
		t.Errorf("AppendMotivo suffix wrong: %q", got)
	}
}

func TestActionLabels(t *testing.T) {
	tests := []struct {
		action LifecycleAction
		want   string
	}{
		{ActionStart, "Iniciada"},
		{ActionPause, "Pausada"},
		{ActionComplete, "Concluída"},
	}
	for _, tt := range tests {
		if got := tt.action.Label(); got != tt.want {
			t.Errorf("%s.Label() = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestMarkerColors(t *testing.T) {
	tests := []struct {
		status ObraStatus
		want   string
	}{
		{StatusPlanejada, "#6B7280"},
		{StatusEmAndamento, "#3B82F6"},
		{StatusConcluida, "#10B981"},
		{StatusPausada, "#F59E0B"},
		{ObraStatus("garbage"), "#6B7280"},
	}
	for _, tt := range tests {
		if got := tt.status.MarkerColor(); got != tt.want {
			t.Errorf("%s.MarkerColor() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
