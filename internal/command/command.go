// Package command parses the /smbot slash command typed into a chat room.
package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	flag "github.com/spf13/pflag"
)

// Name is the slash command users type to invoke the scheduler.
const Name = "/smbot"

// Options holds the parsed scheduling arguments. When Help is set the other
// fields carry no meaning and no event is built.
type Options struct {
	Date     string
	Time     string
	Duration int
	Subject  string
	Help     bool
}

// ParseError reports a malformed or incomplete command. Callers render the
// reason together with Usage() so the user always sees how to recover.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return e.Reason }

func newFlagSet(opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(Name, flag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	fs.StringVarP(&opts.Date, "date", "d", "", "Date for the meeting in the format YYYY-MM-DD (required)")
	fs.StringVarP(&opts.Time, "time", "t", "", "Time for the meeting in the format HH:MM (required)")
	fs.IntVarP(&opts.Duration, "duration", "u", 0, "Duration for the meeting in minutes (required)")
	fs.StringVarP(&opts.Subject, "subject", "s", "", "Subject of the meeting (required)")
	fs.BoolVarP(&opts.Help, "help", "h", false, "Show this help")
	return fs
}

// hasHelp scans the arguments for -h/--help while tolerating every other
// flag, so help works even on an otherwise broken command line.
func hasHelp(args []string) bool {
	var opts Options
	fs := flag.NewFlagSet(Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVarP(&opts.Help, "help", "h", false, "Show this help")
	fs.ParseErrorsWhitelist.UnknownFlags = true
	_ = fs.Parse(args)
	return opts.Help
}

// Parse tokenizes a raw chat command, honoring shell-style quoting so a
// subject containing spaces stays one value, and validates the flag set.
// A leading command name token is skipped if present.
func Parse(raw string) (*Options, error) {
	args, err := shlex.Split(raw)
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("cannot tokenize command: %v", err)}
	}
	if len(args) > 0 && args[0] == Name {
		args = args[1:]
	}

	if hasHelp(args) {
		return &Options{Help: true}, nil
	}

	opts := &Options{}
	fs := newFlagSet(opts)
	if err := fs.Parse(args); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	var missing []string
	for _, name := range []string{"date", "time", "duration", "subject"} {
		if !fs.Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{Reason: "missing required flags: " + strings.Join(missing, ", ")}
	}
	if opts.Duration <= 0 {
		return nil, &ParseError{Reason: fmt.Sprintf("duration must be a positive number of minutes, got %d", opts.Duration)}
	}
	if strings.TrimSpace(opts.Subject) == "" {
		return nil, &ParseError{Reason: "subject must not be empty"}
	}
	return opts, nil
}

// Usage renders the usage block replied to the chat on -h and on any parse
// failure. It is generated from the same flag schema Parse uses, so the two
// cannot drift apart.
func Usage() string {
	var opts Options
	fs := newFlagSet(&opts)

	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s -d YYYY-MM-DD -t HH:MM -u <minutes> -s <subject>\n", Name)
	b.WriteString(fs.FlagUsages())
	return b.String()
}
