package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

const (
	dateLayout     = "Mon, Jan 2"
	clockLayout    = "3:04 PM"
	dateTimeLayout = "Mon, Jan 2 3:04 PM"
)

var fieldLabels = map[string]string{
	domain.FieldStartTime:    "start time",
	domain.FieldEndTime:      "end time",
	domain.FieldLocationName: "location",
	domain.FieldAddress:      "address",
}

// MessageFormatter renders SMS bodies for shift notifications. Free-text
// shift fields are stripped of markup before they reach a message.
type MessageFormatter struct {
	loc    *time.Location
	policy *bluemonday.Policy
}

// NewMessageFormatter formats times in loc; nil means UTC.
func NewMessageFormatter(loc *time.Location) *MessageFormatter {
	if loc == nil {
		loc = time.UTC
	}
	return &MessageFormatter{loc: loc, policy: bluemonday.StrictPolicy()}
}

// Assigned renders the "you were assigned" message.
func (f *MessageFormatter) Assigned(shift *domain.Shift) Renderer {
	return func(r domain.Recipient) domain.Message {
		var b strings.Builder
		b.WriteString(f.greeting(r))
		fmt.Fprintf(&b, "you've been scheduled for a %s shift on %s", f.jobLabel(shift), f.window(shift))
		if where := f.where(shift); where != "" {
			b.WriteString(" at ")
			b.WriteString(where)
		}
		b.WriteString(".")
		return domain.Message{Body: b.String()}
	}
}

// Changed renders the "your shift changed" message. Only fields present in
// changes are mentioned.
func (f *MessageFormatter) Changed(shift *domain.Shift, changes domain.ShiftChanges) Renderer {
	fields := changes.Notifiable()
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		ch := changes[field]
		from, to := f.value(field, ch.From), f.value(field, ch.To)
		label := fieldLabels[field]
		switch {
		case from == "":
			parts = append(parts, fmt.Sprintf("%s set to %s", label, to))
		case to == "":
			parts = append(parts, fmt.Sprintf("%s removed (was %s)", label, from))
		default:
			parts = append(parts, fmt.Sprintf("%s %s -> %s", label, from, to))
		}
	}
	summary := strings.Join(parts, "; ")

	return func(r domain.Recipient) domain.Message {
		return domain.Message{Body: fmt.Sprintf("%syour %s shift on %s has changed: %s.",
			f.greeting(r), f.jobLabel(shift), shift.StartTime.In(f.loc).Format(dateLayout), summary)}
	}
}

func (f *MessageFormatter) greeting(r domain.Recipient) string {
	if name := f.clean(r.FirstName()); name != "" {
		return "Hi " + name + ", "
	}
	return "Hi, "
}

func (f *MessageFormatter) jobLabel(shift *domain.Shift) string {
	if shift.JobType == "" {
		return string(domain.JobOther)
	}
	return string(shift.JobType)
}

func (f *MessageFormatter) window(shift *domain.Shift) string {
	start := shift.StartTime.In(f.loc)
	out := start.Format(dateTimeLayout)
	if shift.EndTime != nil {
		out += " - " + shift.EndTime.In(f.loc).Format(clockLayout)
	}
	return out
}

func (f *MessageFormatter) where(shift *domain.Shift) string {
	loc, addr := f.clean(shift.LocationName), f.clean(shift.Address)
	switch {
	case loc != "" && addr != "":
		return loc + " (" + addr + ")"
	case loc != "":
		return loc
	default:
		return addr
	}
}

// value formats a change value; time fields given as RFC 3339 are shown in
// the formatter's zone.
func (f *MessageFormatter) value(field, v string) string {
	if field == domain.FieldStartTime || field == domain.FieldEndTime {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(v)); err == nil {
			return t.In(f.loc).Format(dateTimeLayout)
		}
	}
	return f.clean(v)
}

func (f *MessageFormatter) clean(s string) string {
	s = html.UnescapeString(f.policy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
