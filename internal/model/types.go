package model

// Pane represents a terminal multiplexer pane.
type Pane struct {
	// Target is the fully qualified pane identifier (e.g., "session:0.0").
	Target string `json:"target"`
	// Session is the session name.
	Session string `json:"session"`
	// Window is the window index.
	Window int `json:"window"`
	// Pane is the pane index.
	Pane int `json:"pane"`
	// Command is the current command running in the pane (e.g., "node", "bash").
	Command string `json:"command"`
}

// Command describes one invokable slash command, either built in or
// discovered from a skill descriptor on disk.
type Command struct {
	// Command is the full invocation string including the leading "/".
	// Plugin-provided skills are namespaced as "/plugin:skill".
	Command string `json:"command"`
	// Description is a one-line summary shown in the command picker.
	Description string `json:"description"`
	// TakesArgs indicates whether the command accepts trailing arguments.
	TakesArgs bool `json:"takes_args"`
}
