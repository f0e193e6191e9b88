package agent

import (
	"encoding/json"
	"strings"

	"github.com/ashureev/spiritual-guide/internal/domain"
)

// RequestFrame is everything the model sees about the current turn.
type RequestFrame struct {
	Persona         string
	PersonaExtra    string
	Message         string
	Frame           domain.Frame
	AllowedTopics   string
	VetoedTopics    string
	AckMode         bool
	FollowupMode    bool
	LastBibleRef    string
	BannedRefs      []string
	RecentQuestions []string
	History         []string
}

// Render serializes the frame into the user message sent to the gateway.
func (f RequestFrame) Render() string {
	var b strings.Builder

	b.WriteString("Persona: " + f.Persona + "\n")
	if f.PersonaExtra != "" {
		b.WriteString("PERSONA_EXTRA:\n" + f.PersonaExtra + "\n")
	}
	b.WriteString("Mensaje_actual: " + f.Message + "\n")

	frameJSON, _ := json.Marshal(f.Frame)
	b.WriteString("FRAME: " + string(frameJSON) + "\n")

	b.WriteString("tema_permitido: " + f.AllowedTopics + "\n")
	b.WriteString("temas_vetados: " + f.VetoedTopics + "\n")
	b.WriteString("ACK_MODE: " + boolString(f.AckMode) + "\n")
	b.WriteString("FOLLOWUP_MODE: " + boolString(f.FollowupMode) + "\n")
	b.WriteString("last_bible_ref: " + orDefault(f.LastBibleRef, "(n/a)") + "\n")

	b.WriteString("banned_refs:\n- ")
	b.WriteString(orDefault(strings.Join(f.BannedRefs, "\n- "), "(none)"))
	b.WriteString("\n")

	b.WriteString("ultimas_preguntas: " + orDefault(strings.Join(f.RecentQuestions, " | "), "(ninguna)") + "\n")
	b.WriteString("Historial: " + orDefault(strings.Join(f.History, " | "), "(sin antecedentes)") + "\n")

	return b.String()
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
