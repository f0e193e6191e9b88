package followup

import (
	"strings"
	"testing"
	"time"

	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSaveAdviceMarksPending(t *testing.T) {
	t.Parallel()

	state := domain.NewUserState(testNow)
	SaveAdvice(state, domain.KeyChild, strings.Repeat("é", 200), "Habla con calma esta noche.", testNow)

	rec := state.Topics[domain.KeyChild]
	require.NotNil(t, rec)
	assert.True(t, rec.PendingFollowup)
	assert.Equal(t, MaxFieldLen, len([]rune(rec.LastIssue)))
	assert.Equal(t, "Habla con calma esta noche.", rec.LastAdvice)
	assert.Equal(t, testNow.UnixMilli(), rec.LastCheck)
	assert.True(t, ShouldFollowUp(state, domain.KeyChild))
	assert.False(t, ShouldFollowUp(state, domain.KeyPartner))
}

func TestSaveAdviceOnNilTopics(t *testing.T) {
	t.Parallel()

	state := &domain.UserState{}
	SaveAdvice(state, domain.KeyMood, "ansiedad", "respira", testNow)
	assert.True(t, ShouldFollowUp(state, domain.KeyMood))
}

func TestResolveIfConfirmed(t *testing.T) {
	t.Parallel()

	state := domain.NewUserState(testNow)
	SaveAdvice(state, domain.KeyChild, "mi hijo no habla", "escúchalo", testNow)

	later := testNow.Add(time.Hour)
	assert.False(t, ResolveIfConfirmed(state, domain.KeyChild, "mi hijo sigue igual", later))
	assert.True(t, ShouldFollowUp(state, domain.KeyChild), "no confirmation phrase leaves the flag alone")
	assert.Equal(t, testNow.UnixMilli(), state.Topics[domain.KeyChild].LastCheck)

	assert.True(t, ResolveIfConfirmed(state, domain.KeyChild, "Lo hice con mi hijo y funcionó", later))
	assert.False(t, ShouldFollowUp(state, domain.KeyChild))
	assert.Equal(t, later.UnixMilli(), state.Topics[domain.KeyChild].LastCheck)
}

func TestResolveIfConfirmedWithoutRecord(t *testing.T) {
	t.Parallel()

	state := domain.NewUserState(testNow)
	assert.False(t, ResolveIfConfirmed(state, domain.KeyFaith, "lo intentaré", testNow))
	assert.Empty(t, state.Topics)
}

func TestIsConfirmation(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"lo hice", "pude hacerlo ayer", "me sirvió mucho", "lo intentare", "haré eso"} {
		assert.True(t, IsConfirmation(text), text)
	}
	assert.False(t, IsConfirmation("no pude"))
}
