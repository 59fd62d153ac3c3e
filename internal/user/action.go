// AngelaMos | 2026
// action.go

package user

import (
	"net/http"
)

// Action names one operation of the directory endpoint. Each action is
// bound to exactly one HTTP method.
type Action int

const (
	GetUser Action = iota
	PostUser
	PatchUser
	DelUser
)

var actionNames = [...]string{
	GetUser:   "getUser",
	PostUser:  "postUser",
	PatchUser: "patchUser",
	DelUser:   "delUser",
}

var actionMethods = [...]string{
	GetUser:   http.MethodGet,
	PostUser:  http.MethodPost,
	PatchUser: http.MethodPatch,
	DelUser:   http.MethodDelete,
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction resolves name among the actions served by method.
func ParseAction(method, name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name && actionMethods[i] == method {
			return Action(i), true
		}
	}
	return 0, false
}
