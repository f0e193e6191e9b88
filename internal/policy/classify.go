// Package policy holds the topic and crisis policy: compiled classifiers,
// the model instructions and the fixed fallback payloads.
//
// Every classifier is a total function over raw user text. Patterns are
// compiled once and never mutated.
package policy

import (
	"regexp"
	"strings"

	"github.com/ashureev/spiritual-guide/internal/domain"
)

var (
	crisisPattern = regexp.MustCompile(`(?i)(suicid|quitarme la vida|hacerme daño|autolesi|no quiero vivir|matarme)`)

	// Entertainment, sports, politics. Tourism is handled by tourismPattern
	// because religious tourism stays on topic.
	offTopicPattern = regexp.MustCompile(`(?i)(farándula|farandula|futbol|fútbol|\bnba\b|\bmlb\b|tenis|goles|partido|quiniela|` +
		`apuesta deportiva|celebridad|famos[oa]|streamer|youtuber|gossip|espectácul|entretenim|box office|taquilla|` +
		`polític|elecci|senador|diputad|president|campaña|guerra|conflicto armado|geopol|` +
		`paquete turístic|playa|hotel|restaurante|ruta gastronómic)`)
	tourismPattern = regexp.MustCompile(`(?i)turismo\s*(religios|cat[oó]lic)?`)

	ackPattern       = regexp.MustCompile(`(?i)\b(gracias|muchas gracias|ok|vale|entendido|perfecto|listo|de acuerdo|genial|bien|okey)\b|👍|👌|🙏`)
	punctOnlyPattern = regexp.MustCompile(`^[\s¿?¡!.,;:()\-–—]+$`)
)

// shortMessageWords is the word count at or below which a message counts as a
// closing acknowledgment.
const shortMessageWords = 4

type tagRule struct {
	tag     domain.TopicTag
	pattern *regexp.Regexp
}

type keyRule struct {
	key     domain.TopicKey
	pattern *regexp.Regexp
}

// Order matters: earlier rules shadow later ones when a message matches several.
var topicRules = []tagRule{
	{domain.TopicAddiction, regexp.MustCompile(`(?i)(droga|adicci|alcohol|apuestas)`)},
	{domain.TopicSeparation, regexp.MustCompile(`(?i)(me separ|separaci[oó]n|divorcio|ruptura)`)},
	{domain.TopicRelationship, regexp.MustCompile(`(?i)(pareja|matrimonio|conyug|novi[oa])`)},
	{domain.TopicGrief, regexp.MustCompile(`(?i)(duelo|falleci[oó]|perd[ií]|luto)`)},
	{domain.TopicMood, regexp.MustCompile(`(?i)(ansied|p[áa]nico|depres|triste|miedo|temor|estr[eé]s)`)},
	{domain.TopicWorkFinance, regexp.MustCompile(`(?i)(trabajo|despido|salario|dinero|deuda|finanzas)`)},
	{domain.TopicHealth, regexp.MustCompile(`(?i)(salud|diagn[oó]stico|enfermedad|dolor)`)},
	{domain.TopicFamilyConflict, regexp.MustCompile(`(?i)(familia|conflicto|discusi[oó]n|suegr)`)},
	{domain.TopicFaith, regexp.MustCompile(`(?i)(\bfe\b|duda|dios|oraci[oó]n|culpa)`)},
}

// Independent of topicRules: keys group by who the advice concerns.
var keyRules = []keyRule{
	{domain.KeyChild, regexp.MustCompile(`(?i)(mi\s+hij[oa]|hij[oa]|adolescente|niñ[oa])`)},
	{domain.KeyPartner, regexp.MustCompile(`(?i)(pareja|espos[oa]|novi[oa]|matrimonio)`)},
	{domain.KeyFamily, regexp.MustCompile(`(?i)(familia|suegr|herman[oa]|padre|madre)`)},
	{domain.KeyWorkFinance, regexp.MustCompile(`(?i)(trabajo|jefe|despido|deuda|banco|dinero|finanzas)`)},
	{domain.KeyMood, regexp.MustCompile(`(?i)(ansied|p[áa]nico|depres|triste|miedo|estr[eé]s)`)},
	{domain.KeyGrief, regexp.MustCompile(`(?i)(duelo|falleci[oó]|luto|perd[ií])`)},
	{domain.KeyAddiction, regexp.MustCompile(`(?i)(adicci|alcohol|apuestas|porno|drog)`)},
	{domain.KeyFaith, regexp.MustCompile(`(?i)(\bfe\b|duda|oraci[oó]n|culpa|pecado)`)},
}

// IsCrisis reports self-harm or suicide language. It takes priority over
// every other classification.
func IsCrisis(text string) bool {
	return crisisPattern.MatchString(text)
}

// IsOffTopic reports entertainment, sports, politics or non-religious
// tourism. Callers check IsCrisis first.
func IsOffTopic(text string) bool {
	if offTopicPattern.MatchString(text) {
		return true
	}
	for _, m := range tourismPattern.FindAllStringSubmatchIndex(text, -1) {
		// Group 1 unset means the mention is not religious tourism.
		if m[2] < 0 {
			return true
		}
	}
	return false
}

// IsAckOrShort reports gratitude or closing language, messages of at most
// four words, and punctuation-only messages.
func IsAckOrShort(text string) bool {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return false
	}
	if ackPattern.MatchString(s) {
		return true
	}
	if len(strings.Fields(s)) <= shortMessageWords {
		return true
	}
	return punctOnlyPattern.MatchString(s)
}

// GuessTopic returns the first matching topic tag, or TopicGeneral.
func GuessTopic(text string) domain.TopicTag {
	for _, r := range topicRules {
		if r.pattern.MatchString(text) {
			return r.tag
		}
	}
	return domain.TopicGeneral
}

// TopicKeyFromMessage returns the first matching topic key, or KeyGeneral.
func TopicKeyFromMessage(text string) domain.TopicKey {
	for _, r := range keyRules {
		if r.pattern.MatchString(text) {
			return r.key
		}
	}
	return domain.KeyGeneral
}
