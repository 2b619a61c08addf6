package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

type Severity int

const (
	UnknownSeverity Severity = iota
	Low
	Medium
	High
	Critical
)

func getSeverityStrings() map[Severity]string {
	return map[Severity]string{
		UnknownSeverity: "unknown",
		Low:             "low",
		Medium:          "medium",
		High:            "high",
		Critical:        "critical",
	}
}

func ParseSeverity(s string) (Severity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for sev, name := range getSeverityStrings() {
		if sev != UnknownSeverity && name == s {
			return sev, nil
		}
	}
	return UnknownSeverity, errs.NewValueIsInvalidErrorWithCause("severity", fmt.Errorf("%q is not a severity", s))
}

func (s Severity) Validate() error {
	if s < Low || s > Critical {
		return errs.NewValueIsOutOfRangeError("severity", int(s), int(Low), int(Critical))
	}
	return nil
}

func (s Severity) String() string {
	if str, ok := getSeverityStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Incident is an entry of the trip's incident log.
type Incident struct {
	id          kernel.UUID
	kind        string
	description string
	severity    Severity
	occurredAt  time.Time
}

func NewIncident(id kernel.UUID, kind, description string, severity Severity, occurredAt time.Time) (Incident, error) {
	i := Incident{
		id:          id,
		kind:        strings.TrimSpace(kind),
		description: strings.TrimSpace(description),
		severity:    severity,
		occurredAt:  occurredAt,
	}

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if i.kind == "" {
		errList = append(errList, errs.NewValueIsRequiredError("incident type"))
	}
	if err := severity.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return Incident{}, err
	}
	return i, nil
}

func (i Incident) ID() kernel.UUID       { return i.id }
func (i Incident) Kind() string          { return i.kind }
func (i Incident) Description() string   { return i.description }
func (i Incident) Severity() Severity    { return i.severity }
func (i Incident) OccurredAt() time.Time { return i.occurredAt }
