package app

import (
	"github.com/yungbote/restkit-backend/internal/rest/controller"
)

// ClassRow is the effective DTO class and form type of one action.
type ClassRow struct {
	Controller string
	Key        string
	DTOClass   string
	FormType   string
}

// ClassReport resolves every routed action of every controller. Actions
// with nothing configured report "-".
func ClassReport(ctrls Controllers) []ClassRow {
	actions := map[string][]controller.Action{}
	for _, r := range ctrls.Routes() {
		if r.Controller == nil {
			continue
		}
		if len(r.Actions) == 0 {
			actions[r.Controller.Name()] = controller.AllActions
		} else {
			actions[r.Controller.Name()] = r.Actions
		}
	}

	rows := []ClassRow{}
	for _, c := range ctrls.All() {
		for _, a := range actions[c.Name()] {
			key := c.Key(a)
			row := ClassRow{Controller: c.Name(), Key: key, DTOClass: "-", FormType: "-"}
			if d, err := c.DTOClass(key); err == nil {
				row.DTOClass = d.Name
			}
			if f, err := c.FormTypeClass(key); err == nil {
				row.FormType = f.Name
			}
			rows = append(rows, row)
		}
	}
	return rows
}
