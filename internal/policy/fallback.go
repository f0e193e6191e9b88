package policy

import "github.com/ashureev/spiritual-guide/internal/domain"

// ClosingTip replaces an empty message when the user is closing the conversation.
const ClosingTip = "Antes de cerrar, respira lento un minuto y repite: “no estoy solo”. Estoy contigo cuando lo necesites."

// DefaultMessage is used when sanitization leaves the message empty.
const DefaultMessage = "Estoy contigo. Demos un paso pequeño y realista hoy."

// DefaultCitation is used when sanitization leaves the verse text or reference empty.
var DefaultCitation = domain.BibleCitation{
	Text: "Cercano está Jehová a los quebrantados de corazón; y salva a los contritos de espíritu.",
	Ref:  "Salmos 34:18",
}

// CrisisReply is returned verbatim when IsCrisis fires.
func CrisisReply() domain.Reply {
	return domain.Reply{
		Message:  "Tu vida es valiosa. No estás solo. Busca apoyo inmediato: un familiar, un amigo o servicios de ayuda en tu país. Podemos respirar juntos ahora y orar por calma.",
		Bible:    DefaultCitation,
		Question: "¿Puedes llamar ahora a alguien de confianza o a un servicio de ayuda para no quedarte solo?",
	}
}

// RedirectReply is returned verbatim when IsOffTopic fires.
func RedirectReply() domain.Reply {
	return domain.Reply{
		Message: "Estoy aquí para tu bienestar personal. Mantengamos el foco en tu paz interior y pasos concretos hoy.",
		Bible: domain.BibleCitation{
			Text: "Venid a mí todos los que estáis trabajados y cargados, y yo os haré descansar.",
			Ref:  "Mateo 11:28",
		},
		Question: "¿Qué situación personal te inquieta ahora y en la que deseas apoyo?",
	}
}

// GenericReply is the top-level fallback when a turn fails outright.
func GenericReply() domain.Reply {
	return domain.Reply{
		Message: "La paz sea contigo. Compárteme en pocas palabras lo esencial, y seguimos paso a paso.",
		Bible:   DefaultCitation,
	}
}

// WelcomeReply is the greeting served before the first turn.
func WelcomeReply() domain.Reply {
	return domain.Reply{
		Message: "La paz esté contigo. Estoy aquí para escucharte y acompañarte con calma.",
		Bible: domain.BibleCitation{
			Text: "El Señor es mi luz y mi salvación; ¿de quién temeré?",
			Ref:  "Salmos 27:1",
		},
	}
}
