package command

import (
	"errors"
	"strings"
	"testing"
)

func TestParseValid(t *testing.T) {
	opts, err := Parse(`/smbot -d 2024-06-01 -t 14:00 -u 60 -s "Planning"`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if opts.Date != "2024-06-01" {
		t.Errorf("Date = %q, want 2024-06-01", opts.Date)
	}
	if opts.Time != "14:00" {
		t.Errorf("Time = %q, want 14:00", opts.Time)
	}
	if opts.Duration != 60 {
		t.Errorf("Duration = %d, want 60", opts.Duration)
	}
	if opts.Subject != "Planning" {
		t.Errorf("Subject = %q, want Planning", opts.Subject)
	}
	if opts.Help {
		t.Error("Help = true, want false")
	}
}

func TestParseQuotedSubject(t *testing.T) {
	opts, err := Parse(`/smbot -d 2024-06-01 -t 14:00 -u 30 -s "Sprint planning with the team"`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if opts.Subject != "Sprint planning with the team" {
		t.Errorf("Subject = %q, quoting not respected", opts.Subject)
	}
}

func TestParseLongFlags(t *testing.T) {
	opts, err := Parse(`/smbot --date 2024-06-01 --time 09:30 --duration 15 --subject standup`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if opts.Date != "2024-06-01" || opts.Time != "09:30" || opts.Duration != 15 || opts.Subject != "standup" {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing date", `/smbot -t 14:00 -u 60 -s x`},
		{"missing time", `/smbot -d 2024-06-01 -u 60 -s x`},
		{"missing duration", `/smbot -d 2024-06-01 -t 14:00 -s x`},
		{"missing subject", `/smbot -d 2024-06-01 -t 14:00 -u 60`},
		{"no flags at all", `/smbot`},
		{"non-numeric duration", `/smbot -d 2024-06-01 -t 14:00 -u sixty -s x`},
		{"zero duration", `/smbot -d 2024-06-01 -t 14:00 -u 0 -s x`},
		{"negative duration", `/smbot -d 2024-06-01 -t 14:00 -u -5 -s x`},
		{"blank subject", `/smbot -d 2024-06-01 -t 14:00 -u 60 -s " "`},
		{"unknown flag", `/smbot -d 2024-06-01 -t 14:00 -u 60 -s x -z`},
		{"unterminated quote", `/smbot -d 2024-06-01 -t 14:00 -u 60 -s "oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if perr.Reason == "" {
				t.Error("ParseError has empty reason")
			}
		})
	}
}

func TestParseHelpShortCircuits(t *testing.T) {
	for _, raw := range []string{
		`/smbot -h`,
		`/smbot --help`,
		`/smbot -d not-even-a-date -h`,
		`/smbot -u sixty --help`,
	} {
		opts, err := Parse(raw)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", raw, err)
			continue
		}
		if !opts.Help {
			t.Errorf("Parse(%q).Help = false, want true", raw)
		}
	}
}

func TestUsageListsAllFlags(t *testing.T) {
	usage := Usage()
	for _, want := range []string{"/smbot", "--date", "--time", "--duration", "--subject", "--help", "required"} {
		if !strings.Contains(usage, want) {
			t.Errorf("Usage() missing %q:\n%s", want, usage)
		}
	}
}
