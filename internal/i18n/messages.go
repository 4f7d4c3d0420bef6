package i18n

var en = map[string]string{
	"initializing":       "initializing...",
	"terminal_too_small": "Terminal too small (min 80x24)",
	"current_size":       "Current: %dx%d",

	// Tabs
	"tab_live":    "Live",
	"tab_daily":   "Daily",
	"tab_history": "History",

	// Live view
	"session_window":    "Session Window",
	"window_usage":      "Window Usage",
	"burn_rate":         "Burn Rate",
	"no_session_window": "no session window - waiting for activity",
	"window_expired":    "session window expired",
	"no_data":           "no data",
	"elapsed":           "elapsed",
	"remaining":         "remaining",
	"input_tokens":      "Input",
	"output_tokens":     "Output",
	"total_tokens":      "Total",
	"session_cost":      "Window Cost",
	"cached":            "(%s cached)",
	"reasoning":         "(%s reasoning)",
	"tokens_per_min":    "Tokens/min",
	"cost_per_hour":     "$/hour",

	// Daily view
	"cost":             "Cost",
	"cached_tokens":    "Cached",
	"reasoning_tokens": "Reasoning",
	"events":           "Events",
	"day_sun":          "Sun",
	"day_mon":          "Mon",
	"day_tue":          "Tue",
	"day_wed":          "Wed",
	"day_thu":          "Thu",
	"day_fri":          "Fri",
	"day_sat":          "Sat",

	// History view
	"usage_events": "Usage Events",
	"no_events":    "no usage events found",
	"history_help": "j/k navigate",
	"time":         "Time",
	"model":        "Model",

	// Status bar
	"status_tabs":    "switch view",
	"status_refresh": "refresh",
	"status_quit":    "quit",
}
