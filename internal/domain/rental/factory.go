package rental

import (
	"book-rental/internal/pkg/clock"
)

type Factory struct {
	Clock               clock.Clock
	DefaultDurationDays int
}

func NewFactory(clock clock.Clock, defaultDurationDays int) *Factory {
	if defaultDurationDays == 0 {
		defaultDurationDays = DefaultDurationDays
	}
	return &Factory{
		Clock:               clock,
		DefaultDurationDays: defaultDurationDays,
	}
}

// Duration resolves a requested day count; zero selects the default.
func (f *Factory) Duration(days int) (Duration, error) {
	if days == 0 {
		days = f.DefaultDurationDays
	}
	return NewDuration(days)
}

func (f *Factory) CreateHeader(ownerID string, item Item, durationDays int) (*Header, error) {
	duration, err := f.Duration(durationDays)
	if err != nil {
		return nil, err
	}
	return NewHeader(ownerID, item, duration, f.Clock.Now())
}
