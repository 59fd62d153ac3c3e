// AngelaMos | 2026
// action.go

package dashboard

// Action selects one dashboard report.
type Action int

const (
	GetFilter Action = iota
	GetOverview
	GetIntensity
	GetTopicDistribution
	GetTrendsOverYears
	GetWorldMapData
	GetBubbleChartData
)

var actionNames = [...]string{
	GetFilter:            "getFilter",
	GetOverview:          "getOverview",
	GetIntensity:         "getIntensity",
	GetTopicDistribution: "getTopicDistribution",
	GetTrendsOverYears:   "getTrendsOverYears",
	GetWorldMapData:      "getWorldMapData",
	GetBubbleChartData:   "getBubbleChartData",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction matches the action query value exactly, case included.
func ParseAction(s string) (Action, bool) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), true
		}
	}
	return 0, false
}
