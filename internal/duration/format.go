// Package duration renders second counts for display.
package duration

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/timetrack-cli/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Format string

const (
	FormatClock   Format = "clock"
	FormatDecimal Format = "decimal"
)

const (
	defaultUnitLabel     = "h"
	defaultDecimalPlaces = 2
	maxDecimalPlaces     = 6
)

// DefaultLocale decides the decimal separator: German uses a comma.
var DefaultLocale = language.German

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatClock, "":
		return FormatClock, nil
	case FormatDecimal:
		return FormatDecimal, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, raw)
	}
}

type options struct {
	includeUnit   bool
	unitLabel     string
	decimalPlaces int
	locale        language.Tag
}

type Option func(*options)

func IncludeUnit() Option {
	return func(o *options) { o.includeUnit = true }
}

// UnitLabel replaces the default "h" suffix. It only shows with IncludeUnit.
func UnitLabel(label string) Option {
	return func(o *options) { o.unitLabel = label }
}

// DecimalPlaces sets the precision of the decimal format. Zero renders whole
// hours.
func DecimalPlaces(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		if n > maxDecimalPlaces {
			n = maxDecimalPlaces
		}
		o.decimalPlaces = n
	}
}

func Locale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// FormatSeconds renders seconds as "H:MM" (clock) or as localized decimal
// hours. Non-finite input is treated as zero.
func FormatSeconds(seconds float64, format Format, opts ...Option) string {
	o := options{
		unitLabel:     defaultUnitLabel,
		decimalPlaces: defaultDecimalPlaces,
		locale:        DefaultLocale,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	var text string
	if format == FormatDecimal {
		text = formatDecimal(seconds, o)
	} else {
		text = formatClock(seconds)
	}

	if o.includeUnit {
		text += " " + o.unitLabel
	}
	return text
}

// FormatOptionalSeconds treats a missing value as zero.
func FormatOptionalSeconds(seconds *float64, format Format, opts ...Option) string {
	if seconds == nil {
		return FormatSeconds(0, format, opts...)
	}
	return FormatSeconds(*seconds, format, opts...)
}

func formatDecimal(seconds float64, o options) string {
	scale := math.Pow(10, float64(o.decimalPlaces))
	hours := math.Round(seconds/3600*scale) / scale
	if hours == 0 {
		// drops the sign of -0
		hours = 0
	}

	// only the decimal separator is localized, never digit grouping
	p := message.NewPrinter(o.locale)
	return p.Sprint(number.Decimal(hours, number.Scale(o.decimalPlaces), number.NoSeparator()))
}

func formatClock(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
	}

	total := int64(math.Abs(math.Trunc(seconds)))
	return fmt.Sprintf("%s%d:%02d", sign, total/3600, (total%3600)/60)
}
