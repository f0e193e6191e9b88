package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentAssistantQuestions(t *testing.T) {
	t.Parallel()

	transcript := []string{
		"Asistente: Respira hondo. ¿Cómo dormiste anoche?",
		"Usuario: mal, la verdad",
		"Asistente: Te entiendo. ¿Pudiste hablar con tu hijo?",
		"Usuario: todavía no",
		"asistente: Da un paso pequeño hoy.  ¿Pudiste   hablar con tu HIJO?",
	}

	got := RecentAssistantQuestions(transcript, DefaultMaxQuestions)
	assert.Equal(t, []string{
		"¿pudiste hablar con tu hijo?",
		"¿cómo dormiste anoche?",
	}, got)
}

func TestRecentAssistantQuestionsStopsAfterMaxLines(t *testing.T) {
	t.Parallel()

	transcript := []string{
		"Asistente: ¿Primera pregunta?",
		"Asistente: Sin pregunta aquí.",
		"Asistente: ¿Tercera pregunta?",
	}

	got := RecentAssistantQuestions(transcript, 2)
	assert.Equal(t, []string{"¿tercera pregunta?"}, got, "lines without a question still count toward max")
}

func TestRecentAssistantQuestionsWithoutInvertedMark(t *testing.T) {
	t.Parallel()

	got := RecentAssistantQuestions([]string{"Asistente: Estoy contigo. Que te preocupa hoy?"}, 5)
	assert.Equal(t, []string{"que te preocupa hoy?"}, got)
}

func TestRecentAssistantQuestionsIgnoresUserLines(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RecentAssistantQuestions([]string{"Usuario: ¿me ayudas?"}, 5))
	assert.Empty(t, RecentAssistantQuestions(nil, 5))
}

func TestRecentBibleRefs(t *testing.T) {
	t.Parallel()

	transcript := []string{
		"Asistente: El Señor es mi pastor — Salmos 23:1",
		"Asistente: Venid a mí (Mateo 11:28)",
		"Asistente: Dios es amor - 1 Juan 4:8",
		"Usuario: gracias",
		"Asistente: Otra vez — Salmos 23:1",
		"Asistente: Porque de tal manera amó Dios al mundo — Juan 3:16",
	}

	got := RecentBibleRefs(transcript, DefaultMaxRefs)
	assert.Equal(t, []string{"Juan 3:16", "Salmos 23:1", "1 Juan 4:8"}, got)
}

func TestRecentBibleRefsBounds(t *testing.T) {
	t.Parallel()

	transcript := []string{
		"— Juan 1:1", "— Juan 1:2", "— Juan 1:3", "— Juan 1:4", "— Juan 1:1",
	}
	for max := 0; max <= 6; max++ {
		got := RecentBibleRefs(transcript, max)
		assert.LessOrEqual(t, len(got), max)

		seen := map[string]bool{}
		for _, ref := range got {
			assert.False(t, seen[ref], "duplicate %q", ref)
			seen[ref] = true
		}
	}
	assert.Equal(t, []string{"Juan 1:1"}, RecentBibleRefs(transcript, 1))
}

func TestCompact(t *testing.T) {
	t.Parallel()

	var transcript []string
	for i := 0; i < 14; i++ {
		transcript = append(transcript, strings.Repeat("á", 300))
	}
	transcript[13] = "última"

	got := Compact(transcript, DefaultKeep, DefaultMaxLen)
	assert.Len(t, got, DefaultKeep)
	assert.Equal(t, "última", got[len(got)-1])
	assert.Equal(t, DefaultMaxLen, len([]rune(got[0])))
	assert.Empty(t, Compact(transcript, 0, DefaultMaxLen))
}
