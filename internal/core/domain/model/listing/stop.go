package listing

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Stop is an intermediate stop on the route. Order is 1-based.
type Stop struct {
	name  string
	order int
}

func (s Stop) Name() string { return s.name }
func (s Stop) Order() int   { return s.order }

// NormalizeStops turns the bare-name shorthand into ordered stop records,
// numbering them by input position.
func NormalizeStops(names []string) ([]Stop, error) {
	stops := make([]Stop, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errs.NewValueIsRequiredError(fmt.Sprintf("stop %d name", i+1))
		}
		stops = append(stops, Stop{name: name, order: i + 1})
	}
	return stops, nil
}
