package cli

import "strings"

// Action selects the operation of an invocation.
type Action string

const (
	ActionAdd    Action = "add"
	ActionList   Action = "list"
	ActionRemove Action = "remove"
)

// Args is the parsed command line.
type Args struct {
	Action     Action
	Positional []string // URLs to add or remove targets
	Tags       []string // --tags, nil when absent
	Note       string   // --note
	Perl       bool     // --perl: operate on the resource collection
	Table      bool     // --table: render lists as a table
}

// ParseArgs scans args left to right. The grammar is lenient: "--tags" and
// "--note" consume the following argument whatever it is, the words add,
// list and remove set the action wherever they appear, unknown "--" flags
// are dropped and everything else is positional.
func ParseArgs(args []string) Args {
	parsed := Args{Action: ActionAdd}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--tags":
			if i+1 < len(args) {
				i++
				parsed.Tags = strings.Split(args[i], ",")
			}
		case arg == "--note":
			if i+1 < len(args) {
				i++
				parsed.Note = args[i]
			}
		case arg == "--perl":
			parsed.Perl = true
		case arg == "--table":
			parsed.Table = true
		case arg == string(ActionAdd), arg == string(ActionList), arg == string(ActionRemove):
			parsed.Action = Action(arg)
		case strings.HasPrefix(arg, "--"):
			// unknown flag
		default:
			parsed.Positional = append(parsed.Positional, arg)
		}
	}

	return parsed
}
