package payment

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Provider selects which mobile-money code format applies.
type Provider string

const (
	// ProviderA issues dotted codes with an embedded issue time, e.g. CI250314.1012.A12345.
	ProviderA Provider = "A"
	// ProviderB issues plain 11-digit codes.
	ProviderB Provider = "B"
)

const (
	minIdentifierLen = 5
	pastWindow       = 60 * time.Minute
	futureSkew       = 5 * time.Minute
)

var (
	ErrFormatInvalid   = errors.New("transaction id format invalid")
	ErrTemporalInvalid = errors.New("transaction id timestamp outside accepted window")
	ErrUnknownProvider = errors.New("unknown payment provider")

	errTimestampParse = errors.New("embedded timestamp unparseable")
)

var (
	providerAPattern = regexp.MustCompile(`^[A-Z]{2}\d{6}\.\d{4}\.[A-Z]\d{5,6}$`)
	providerBPattern = regexp.MustCompile(`^\d{11}$`)
)

// ParseProvider accepts "A"/"B" in either case.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToUpper(strings.TrimSpace(s))) {
	case ProviderA:
		return ProviderA, nil
	case ProviderB:
		return ProviderB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// Validator checks transaction identifiers against the current local date and time.
type Validator struct {
	now func() time.Time
	loc *time.Location

	// issuedAt extracts the embedded issue time of a provider A code.
	issuedAt func(id string) (time.Time, error)
}

func NewValidator(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	v := &Validator{now: time.Now, loc: loc}
	v.issuedAt = v.embeddedTime
	return v
}

// WithClock replaces the wall clock.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Validate reports whether id is a plausible, fresh confirmation code for provider.
func (v *Validator) Validate(id string, provider Provider) bool {
	return v.Classify(id, provider) == nil
}

// Classify is Validate with the rejection reason. Callers facing users should only
// expose accept/reject.
func (v *Validator) Classify(id string, provider Provider) error {
	id = strings.TrimSpace(id)
	if len(id) < minIdentifierLen {
		return ErrFormatInvalid
	}

	switch provider {
	case ProviderA:
		if !providerAPattern.MatchString(id) {
			return ErrFormatInvalid
		}
		issued, err := v.issuedAt(id)
		if errors.Is(err, errTimestampParse) {
			// fail open: a structurally valid code is accepted when its timestamp can't be read
			return nil
		}
		if err != nil {
			return err
		}
		return v.checkWindow(issued)
	case ProviderB:
		if !providerBPattern.MatchString(id) {
			return ErrFormatInvalid
		}
		return nil
	default:
		return ErrUnknownProvider
	}
}

// embeddedTime reads YYMMDD.hhmm at fixed offsets of a provider A code.
func (v *Validator) embeddedTime(id string) (time.Time, error) {
	fields := [5]struct{ from, to int }{{2, 4}, {4, 6}, {6, 8}, {9, 11}, {11, 13}}
	var n [5]int
	for i, f := range fields {
		if len(id) < f.to {
			return time.Time{}, errTimestampParse
		}
		x, err := strconv.Atoi(id[f.from:f.to])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", errTimestampParse, err)
		}
		n[i] = x
	}
	year, month, day, hour, minute := 2000+n[0], time.Month(n[1]), n[2], n[3], n[4]

	t := time.Date(year, month, day, hour, minute, 0, 0, v.loc)
	// time.Date normalizes overflow (month 13, Feb 30, 25h); reject rather than roll over
	if t.Year() != year || t.Month() != month || t.Day() != day || t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, ErrTemporalInvalid
	}
	return t, nil
}

func (v *Validator) checkWindow(issued time.Time) error {
	now := v.now().In(v.loc)

	ny, nm, nd := now.Date()
	iy, im, iday := issued.Date()
	if ny != iy || nm != im || nd != iday {
		return ErrTemporalInvalid
	}

	diff := now.Sub(issued)
	if diff >= 0 && diff <= pastWindow {
		return nil
	}
	if diff < 0 && -diff <= futureSkew {
		return nil
	}
	return ErrTemporalInvalid
}
