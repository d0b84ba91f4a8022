package models

import (
	"errors"
	"fmt"
	"time"
)

// ObraStatus is the lifecycle state of a work order. Values match the
// wire/database representation used by the frontend.
type ObraStatus string

const (
	StatusPlanejada   ObraStatus = "planejada"
	StatusEmAndamento ObraStatus = "em_andamento"
	StatusConcluida   ObraStatus = "concluida"
	StatusPausada     ObraStatus = "pausada"
)

func (s ObraStatus) Valid() bool {
	switch s {
	case StatusPlanejada, StatusEmAndamento, StatusConcluida, StatusPausada:
		return true
	}
	return false
}

// Label returns the human-facing pt-BR label.
func (s ObraStatus) Label() string {
	switch s {
	case StatusPlanejada:
		return "Planejada"
	case StatusEmAndamento:
		return "Em Andamento"
	case StatusConcluida:
		return "Concluída"
	case StatusPausada:
		return "Pausada"
	}
	return string(s)
}

// MarkerColor is the fixed map palette for status-colored markers.
func (s ObraStatus) MarkerColor() string {
	switch s {
	case StatusPlanejada:
		return "#6B7280"
	case StatusEmAndamento:
		return "#3B82F6"
	case StatusConcluida:
		return "#10B981"
	case StatusPausada:
		return "#F59E0B"
	}
	return "#6B7280"
}

// Transition guards. The UI mirrors these, but the server is the one
// that enforces them.
func (s ObraStatus) CanStart() bool    { return s == StatusPlanejada || s == StatusPausada }
func (s ObraStatus) CanPause() bool    { return s == StatusEmAndamento }
func (s ObraStatus) CanComplete() bool { return s == StatusEmAndamento }

// LifecycleAction is a requested transition on a work order.
type LifecycleAction string

const (
	ActionStart    LifecycleAction = "start"
	ActionPause    LifecycleAction = "pause"
	ActionComplete LifecycleAction = "complete"
)

// Label is the past-tense pt-BR label recorded in the observação trail.
func (a LifecycleAction) Label() string {
	switch a {
	case ActionStart:
		return "Iniciada"
	case ActionPause:
		return "Pausada"
	case ActionComplete:
		return "Concluída"
	}
	return string(a)
}

var ErrInvalidTransition = errors.New("transição de status inválida")

// Transition returns the status that action leads to from current, or
// ErrInvalidTransition when the pair is not in the transition table.
// Concluída is terminal.
func Transition(current ObraStatus, action LifecycleAction) (ObraStatus, error) {
	switch action {
	case ActionStart:
		if current.CanStart() {
			return StatusEmAndamento, nil
		}
	case ActionPause:
		if current.CanPause() {
			return StatusPausada, nil
		}
	case ActionComplete:
		if current.CanComplete() {
			return StatusConcluida, nil
		}
	default:
		return "", fmt.Errorf("%w: ação desconhecida %q", ErrInvalidTransition, action)
	}
	return "", fmt.Errorf("%w: %s a partir de %s", ErrInvalidTransition, action, current)
}

// motivoTimestamp matches the pt-BR locale string the frontend used.
const motivoTimestamp = "02/01/2006, 15:04:05"

// AppendMotivo appends the timestamped transition reason to the existing
// observação, preserving prior content.
func AppendMotivo(observacao string, at time.Time, action LifecycleAction, motivo string) string {
	line := fmt.Sprintf("[%s] %s: %s", at.Format(motivoTimestamp), action.Label(), motivo)
	if observacao == "" {
		return line
	}
	return observacao + "\n\n" + line
}
