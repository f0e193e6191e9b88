package policy

import (
	"testing"

	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsCrisis(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"quiero quitarme la vida",
		"Pienso en el SUICIDIO",
		"ya no quiero vivir así",
		"a veces quiero hacerme daño",
	} {
		assert.True(t, IsCrisis(text), text)
	}
	assert.False(t, IsCrisis("estoy cansado del trabajo"))
}

func TestIsOffTopic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"¿qué opinas del futbol?", true},
		{"¿quién ganará las elecciones?", true},
		{"busco un hotel en la playa", true},
		{"me interesa el turismo de aventura", true},
		{"quiero hacer turismo religioso a Fátima", false},
		{"turismo católico en Roma", false},
		{"turismo religioso y luego turismo de playa", true},
		{"tengo un conflicto con mi suegra", false},
		{"me siento sola", false},
		{"tengo miedo del resultado de mis análisis", false},
		{"perdí una apuesta con mi hermano", false},
		{"mi vecina se llama Ananbaa", false},
		{"vi el resumen de la nba", true},
		{"hice una apuesta deportiva", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOffTopic(tt.text), tt.text)
	}
}

func TestIsAckOrShort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"gracias, me ayudó mucho", true},
		{"Muchas gracias por escucharme esta noche tan difícil", true},
		{"ok", true},
		{"🙏", true},
		{"...", true},
		{"quiero leer la biblia", true},
		{"mi hijo no me habla desde hace semanas y no sé qué hacer", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAckOrShort(tt.text), tt.text)
	}
}

func TestGuessTopicPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want domain.TopicTag
	}{
		{"mi pareja bebe alcohol todos los días", domain.TopicAddiction},
		{"estoy pensando en el divorcio con mi pareja", domain.TopicSeparation},
		{"mi novio no me entiende", domain.TopicRelationship},
		{"mi madre falleció y tengo miedo", domain.TopicGrief},
		{"siento mucha ansiedad", domain.TopicMood},
		{"me despidieron, no tengo dinero", domain.TopicWorkFinance},
		{"espero un diagnóstico", domain.TopicHealth},
		{"discusión con mi suegra", domain.TopicFamilyConflict},
		{"tengo dudas sobre Dios", domain.TopicFaith},
		{"hola, buenas tardes a todos", domain.TopicGeneral},
		{"anoto la fecha de hoy", domain.TopicGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GuessTopic(tt.text), tt.text)
	}
}

func TestTopicKeyFromMessagePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want domain.TopicKey
	}{
		{"mi hijo tiene problemas con el alcohol", domain.KeyChild},
		{"mi esposa y mi madre discuten", domain.KeyPartner},
		{"mi hermana no me llama", domain.KeyFamily},
		{"mi jefe me presiona", domain.KeyWorkFinance},
		{"tengo ataques de pánico", domain.KeyMood},
		{"estoy de luto", domain.KeyGrief},
		{"no puedo dejar las apuestas", domain.KeyAddiction},
		{"siento culpa por mi pecado", domain.KeyFaith},
		{"buenas noches", domain.KeyGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TopicKeyFromMessage(tt.text), tt.text)
	}
}

func TestFallbackPayloadsAreFixed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CrisisReply(), CrisisReply())
	assert.True(t, CrisisReply().HasQuestion())
	assert.True(t, RedirectReply().HasQuestion())
	assert.False(t, GenericReply().HasQuestion())
	assert.Equal(t, "Mateo 11:28", RedirectReply().Bible.Ref)
}
