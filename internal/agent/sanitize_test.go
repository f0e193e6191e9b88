package agent

import (
	"strings"
	"testing"

	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/ashureev/spiritual-guide/internal/policy"
	"github.com/ashureev/spiritual-guide/internal/shared"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     domain.Reply
		params SanitizeParams
		want   domain.Reply
	}{
		{
			name: "strips question marks from message",
			in:   domain.Reply{Message: "¿Estás bien? Respira.", Bible: domain.BibleCitation{Text: "t", Ref: "Juan 1:1"}},
			want: domain.Reply{Message: "Estás bien Respira.", Bible: domain.BibleCitation{Text: "t", Ref: "Juan 1:1"}},
		},
		{
			name: "cleans reference",
			in:   domain.Reply{Message: "Paz.", Bible: domain.BibleCitation{Text: "t", Ref: "  Juan (Evangelio)  3:16 "}},
			want: domain.Reply{Message: "Paz.", Bible: domain.BibleCitation{Text: "t", Ref: "Juan 3:16"}},
		},
		{
			name:   "forced reference wins",
			in:     domain.Reply{Message: "Paz.", Bible: domain.BibleCitation{Text: "t", Ref: "Mateo 5:1"}},
			params: SanitizeParams{ForcedRef: "Juan 4"},
			want:   domain.Reply{Message: "Paz.", Bible: domain.BibleCitation{Text: "t", Ref: "Juan 4"}},
		},
		{
			name: "keeps well formed question",
			in:   domain.Reply{Message: "Paz.", Question: " ¿Qué harás hoy? "},
			want: domain.Reply{Message: "Paz.", Question: "¿Qué harás hoy?"},
		},
		{
			name: "drops question without trailing mark",
			in:   domain.Reply{Message: "Paz.", Question: "¿Qué harás hoy"},
			want: domain.Reply{Message: "Paz."},
		},
		{
			name:   "drops recent question",
			in:     domain.Reply{Message: "Paz.", Question: "¿Qué  harás HOY?"},
			params: SanitizeParams{RecentQuestions: []string{"¿qué harás hoy?"}},
			want:   domain.Reply{Message: "Paz."},
		},
		{
			name:   "ack drops question and fills closing tip",
			in:     domain.Reply{Question: "¿Seguimos?"},
			params: SanitizeParams{AckMode: true},
			want:   domain.Reply{Message: policy.ClosingTip},
		},
		{
			name: "empty stays empty",
			in:   domain.Reply{},
			want: domain.Reply{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Sanitize(tt.in, tt.params))
		})
	}
}

func TestSanitizeWordLimits(t *testing.T) {
	t.Parallel()

	long := domain.Reply{Message: strings.Repeat("paz ", 100)}

	got := Sanitize(long, SanitizeParams{})
	assert.Equal(t, 60, shared.WordCount(got.Message))

	got = Sanitize(long, SanitizeParams{AckMode: true})
	assert.Equal(t, 30, shared.WordCount(got.Message))
}

func TestSanitizeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		reply  domain.Reply
		params SanitizeParams
	}{
		{domain.Reply{Message: "¿Hola? " + strings.Repeat("uno  dos ", 50), Bible: domain.BibleCitation{Text: " t ", Ref: "Salmos (RVR) 23:1"}, Question: "¿Y tú?"}, SanitizeParams{}},
		{domain.Reply{Message: strings.Repeat("gracias ", 45), Question: "¿Algo más?"}, SanitizeParams{AckMode: true}},
		{domain.Reply{}, SanitizeParams{AckMode: true, ForcedRef: "Juan 2"}},
		{domain.Reply{Message: "a ? b ¿ c", Question: "¿repetida?"}, SanitizeParams{RecentQuestions: []string{"¿repetida?"}}},
	}
	for _, in := range inputs {
		once := Sanitize(in.reply, in.params)
		twice := Sanitize(once, in.params)
		assert.Equal(t, once, twice)
	}
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	got := WithDefaults(domain.Reply{Bible: domain.BibleCitation{Ref: "Juan 1"}})
	assert.Equal(t, policy.DefaultMessage, got.Message)
	assert.Equal(t, policy.DefaultCitation.Text, got.Bible.Text)
	assert.Equal(t, "Juan 1", got.Bible.Ref)

	got = WithDefaults(domain.Reply{})
	assert.Equal(t, policy.DefaultCitation, got.Bible)
	assert.Empty(t, got.Question)
}
