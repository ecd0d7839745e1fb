package rental

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinDurationDays     = 1
	MaxDurationDays     = 30
	DefaultDurationDays = 7
)

var (
	ErrNegativeMoney   = errors.New("money cannot be negative")
	ErrInvalidDuration = fmt.Errorf("rental duration must be between %d and %d days", MinDurationDays, MaxDurationDays)
)

// Money is an amount in cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

// MustMoney is for constants and tests.
func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsPositive() bool {
	return m.cents > 0
}

func (m Money) Mul(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// Duration is a rental length in whole days.
type Duration struct {
	days int
}

func NewDuration(days int) (Duration, error) {
	if days < MinDurationDays || days > MaxDurationDays {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{days: days}, nil
}

func (d Duration) Days() int {
	return d.days
}

func (d Duration) DueFrom(start time.Time) time.Time {
	return start.AddDate(0, 0, d.days)
}
