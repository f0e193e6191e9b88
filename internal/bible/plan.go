// Package bible tracks a user's progress through a sequential reading plan.
package bible

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ashureev/spiritual-guide/internal/domain"
)

// DefaultPlanID names the plan used when a user has none.
const DefaultPlanID = "john"

// Plan is a named, ordered list of references.
type Plan struct {
	ID    string
	Title string
	Items []string
}

var defaultPlans = map[string]Plan{
	DefaultPlanID: chapterPlan(DefaultPlanID, "Evangelio según Juan", "Juan", 21),
}

func chapterPlan(id, title, book string, chapters int) Plan {
	items := make([]string, 0, chapters)
	for i := 1; i <= chapters; i++ {
		items = append(items, fmt.Sprintf("%s %d", book, i))
	}
	return Plan{ID: id, Title: title, Items: items}
}

// DefaultPlan returns a copy of the default reading plan.
func DefaultPlan() Plan {
	p := defaultPlans[DefaultPlanID]
	p.Items = append([]string(nil), p.Items...)
	return p
}

var (
	startPattern    = regexp.MustCompile(`(?i)(leer la biblia|quiero leer la biblia|leemos la biblia|empezar lectura b[íi]blica)`)
	continuePattern = regexp.MustCompile(`(?i)(continuemos|seguir leyendo|continuar lectura|retomar lectura)`)
)

// WantsStart reports a request to begin the reading plan from the start.
func WantsStart(text string) bool {
	return startPattern.MatchString(text)
}

// WantsContinue reports a request to read the next item of the plan.
func WantsContinue(text string) bool {
	return continuePattern.MatchString(text)
}

// EnsurePlan initializes state.Bible to the default plan when it is missing
// or its items are empty.
func EnsurePlan(state *domain.UserState) {
	if state.Bible == nil {
		p := DefaultPlan()
		state.Bible = &domain.ReadingPlanState{PlanID: p.ID, Items: p.Items}
		return
	}
	if len(state.Bible.Items) == 0 {
		p := DefaultPlan()
		state.Bible.PlanID = p.ID
		state.Bible.Items = p.Items
		state.Bible.Index = 0
	}
}

// Reset moves the cursor back to the first item.
func Reset(state *domain.UserState) {
	EnsurePlan(state)
	state.Bible.Index = 0
}

// NextRef returns the reference at the cursor and advances it by one.
// Once the plan is exhausted the last item is returned again.
// Every call mutates state; do not use it for lookups.
func NextRef(state *domain.UserState, now time.Time) string {
	EnsurePlan(state)
	plan := state.Bible

	i := max(plan.Index, 0)
	ref := plan.Items[len(plan.Items)-1]
	if i < len(plan.Items) {
		ref = plan.Items[i]
	}

	plan.LastRef = ref
	plan.Index = min(i+1, len(plan.Items))
	plan.LastUpdated = now.UnixMilli()
	return ref
}
