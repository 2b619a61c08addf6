package request

import (
	"strings"
	"time"

	"freight/internal/pkg/errs"
)

// Contact is the person handing over or receiving the parcel.
type Contact struct {
	name  string
	phone string
}

func NewContact(name, phone string) (Contact, error) {
	c := Contact{name: strings.TrimSpace(name), phone: strings.TrimSpace(phone)}
	if c.name == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact name")
	}
	return c, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Phone() string { return c.phone }

// Window is a preferred pickup or delivery time range. Either bound may be zero.
type Window struct {
	from time.Time
	to   time.Time
}

func NewWindow(from, to time.Time) (Window, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return Window{}, errs.NewValueIsInvalidError("time window end is before its start")
	}
	return Window{from: from, to: to}, nil
}

func (w Window) From() time.Time { return w.from }
func (w Window) To() time.Time   { return w.to }
func (w Window) IsZero() bool    { return w.from.IsZero() && w.to.IsZero() }
