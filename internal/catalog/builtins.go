package catalog

import "github.com/timvw/pane-relay/internal/model"

// builtins is the static command table. It is always first in the catalog,
// in this fixed order; discovered skill commands are appended after it.
var builtins = []model.Command{
	{Command: "/bug", Description: "Report a Claude Code bug", TakesArgs: false},
	{Command: "/clear", Description: "Clear conversation history", TakesArgs: false},
	{Command: "/compact", Description: "Compact conversation with summary", TakesArgs: true},
	{Command: "/config", Description: "Manage configuration", TakesArgs: true},
	{Command: "/cost", Description: "Show token usage and cost", TakesArgs: false},
	{Command: "/doctor", Description: "Check Claude Code installation", TakesArgs: false},
	{Command: "/exit", Description: "Exit Claude Code", TakesArgs: false},
	{Command: "/help", Description: "Show help", TakesArgs: true},
	{Command: "/ide", Description: "Connect to IDE", TakesArgs: false},
	{Command: "/init", Description: "Initialize project with CLAUDE.md", TakesArgs: false},
	{Command: "/login", Description: "Sign in to Claude", TakesArgs: false},
	{Command: "/logout", Description: "Sign out from Claude", TakesArgs: false},
	{Command: "/mcp", Description: "Manage MCP servers", TakesArgs: true},
	{Command: "/memory", Description: "Edit memory (CLAUDE.md)", TakesArgs: false},
	{Command: "/migrate-installer", Description: "Migrate to latest installer", TakesArgs: false},
	{Command: "/model", Description: "Set or show current AI model", TakesArgs: true},
	{Command: "/pr-comments", Description: "View pull request comments", TakesArgs: false},
	{Command: "/reset", Description: "Reset to empty project context", TakesArgs: false},
	{Command: "/resume", Description: "Resume a previous conversation", TakesArgs: true},
	{Command: "/review", Description: "Request code review", TakesArgs: false},
	{Command: "/status", Description: "Show account and system status", TakesArgs: false},
	{Command: "/terminal", Description: "Run a terminal command", TakesArgs: true},
	{Command: "/vim", Description: "Enter vim mode", TakesArgs: false},
}

// Builtins returns a copy of the static command table.
func Builtins() []model.Command {
	out := make([]model.Command, len(builtins))
	copy(out, builtins)
	return out
}
