package tally

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var timeToken = regexp.MustCompile(`\{([dhms])(?::0?(\d+))?\}`)

// FormatTime renders a second count through a "{h:02}:{m:02}:{s:02}"
// style template. Only the components the template references are split
// off the total, so "{m:02}:{s:02}" shows 90 minutes as "90:00" rather
// than rolling into hours. With an empty template the coarsest non-zero
// unit picks one of the standard templates, compact or unit-suffixed.
func FormatTime(seconds int, template string, units bool) string {
	var days, hours, minutes int

	if template != "" {
		if strings.Contains(template, "{d") {
			days = seconds / daySeconds
			seconds %= daySeconds
		}
		if strings.Contains(template, "{h") {
			hours = seconds / hourSeconds
			seconds %= hourSeconds
		}
		if strings.Contains(template, "{m") {
			minutes = seconds / minuteSeconds
			seconds %= minuteSeconds
		}
	} else {
		days = seconds / daySeconds
		seconds %= daySeconds
		hours = seconds / hourSeconds
		seconds %= hourSeconds
		minutes = seconds / minuteSeconds
		seconds %= minuteSeconds

		switch {
		case days > 0:
			template = TimeDHMS
			if units {
				template = TimeDHMSUnits
			}
		case hours > 0:
			template = TimeHMS
			if units {
				template = TimeHMSUnits
			}
		case minutes > 0:
			template = TimeMS
			if units {
				template = TimeMSUnits
			}
		default:
			template = TimeS
			if units {
				template = TimeSUnits
			}
		}
	}

	parts := map[string]int{"d": days, "h": hours, "m": minutes, "s": seconds}
	return timeToken.ReplaceAllStringFunc(template, func(tok string) string {
		m := timeToken.FindStringSubmatch(tok)
		v := parts[m[1]]
		if m[2] != "" {
			width, _ := strconv.Atoi(m[2])
			return fmt.Sprintf("%0*d", width, v)
		}
		return strconv.Itoa(v)
	})
}

// FormatPower scales a value by powers of step and appends the matching
// unit prefix, e.g. 1536 at step 1024 becomes "1.50k". With no prefix
// table the raw value is formatted. A negative precision selects the
// shortest representation.
func FormatPower(value float64, precision int, prefixes []string, step float64) string {
	if len(prefixes) == 0 {
		return formatFloat(value, precision)
	}
	if step == 0 {
		step = 1000
	}

	scaled, power := 0.0, 0
	if value >= 2e-6 {
		power = int(math.Log(value) / math.Log(step))
		if power < 0 {
			power = 0
		}
		if power > len(prefixes)-1 {
			power = len(prefixes) - 1
		}
		scaled = value / math.Pow(step, float64(power))
	}

	return formatFloat(scaled, precision) + prefixes[power]
}

func formatFloat(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
