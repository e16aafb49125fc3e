package habit

import (
	"fmt"

	"github.com/salmancert/atomic/internal/domain"
)

// DispatchContext carries the facts a rendered notification body may
// mention: the app that triggered the intervention and its usage today.
type DispatchContext struct {
	App     domain.AppID
	Minutes int
	Goal    string // a replacement activity or intention, may be empty
}

// Render maps an intervention's kind to concrete notification content.
// It is a pure function of its inputs — no state, no side effects.
//
// Unknown kinds render nothing: ok is false and no notification is emitted.
// That is a silent no-op, not an error.
func Render(iv domain.Intervention, ctx DispatchContext) (domain.Notification, bool) {
	switch iv.Kind {
	case domain.InterventionObvious:
		return domain.Notification{
			Type:  domain.NotifyIntervention,
			Title: "Usage Alert",
			Body:  fmt.Sprintf("You've spent %d minutes on %s today. %s", ctx.Minutes, ctx.App, iv.Action),
		}, true

	case domain.InterventionUnattractive:
		return domain.Notification{
			Type:  domain.NotifyIntervention,
			Title: "Time Well Spent?",
			Body:  fmt.Sprintf("Those %d minutes on %s could have gone elsewhere. %s", ctx.Minutes, ctx.App, iv.Action),
		}, true

	case domain.InterventionDifficult:
		return domain.Notification{
			Type:  domain.NotifyIntervention,
			Title: "Taking a Pause",
			Body:  fmt.Sprintf("Adding a moment of friction before %s. %s", ctx.App, iv.Action),
		}, true

	case domain.InterventionUnsatisfying:
		body := fmt.Sprintf("Every minute on %s is a minute away from your goal. %s", ctx.App, iv.Action)
		if ctx.Goal != "" {
			body = fmt.Sprintf("Every minute on %s is a minute away from: %s. %s", ctx.App, ctx.Goal, iv.Action)
		}
		return domain.Notification{
			Type:  domain.NotifyIntervention,
			Title: "Goal Reminder",
			Body:  body,
		}, true

	default:
		return domain.Notification{}, false
	}
}
