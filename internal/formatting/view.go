package formatting

import (
	"alertstate/internal/monitor"
	"alertstate/internal/reconciler"
)

// planView is the serialized form of a plan.
type planView struct {
	Project  string       `json:"project"`
	Declared int          `json:"declared"`
	Remote   int          `json:"remote"`
	Summary  summaryView  `json:"summary"`
	Actions  []actionView `json:"actions"`
}

type summaryView struct {
	Create int `json:"create"`
	Update int `json:"update"`
	Delete int `json:"delete"`
}

type actionView struct {
	Action   string          `json:"action"`
	Name     string          `json:"name"`
	RemoteID int64           `json:"remoteId,omitempty"`
	Changes  []string        `json:"changes,omitempty"`
	Diff     string          `json:"diff,omitempty"`
	Monitor  *monitor.Record `json:"monitor,omitempty"`
}

func newPlanView(plan reconciler.Plan) planView {
	view := planView{
		Project:  plan.Project,
		Declared: len(plan.Declared),
		Remote:   len(plan.Remote),
		Summary: summaryView{
			Create: plan.Count(reconciler.ActionCreate),
			Update: plan.Count(reconciler.ActionUpdate),
			Delete: plan.Count(reconciler.ActionDelete),
		},
		Actions: make([]actionView, 0, len(plan.Actions)),
	}

	for _, a := range plan.Actions {
		av := actionView{
			Action:   string(a.Kind),
			Name:     a.Name,
			RemoteID: a.RemoteID,
			Changes:  a.Changes,
			Diff:     a.Diff,
		}
		if a.Kind != reconciler.ActionDelete {
			payload := a.Record
			av.Monitor = &payload
		}
		view.Actions = append(view.Actions, av)
	}
	return view
}
