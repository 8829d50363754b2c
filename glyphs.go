package tally

// Default templates resolved at Start when none was configured. Which one
// applies depends on whether a maximum is known.
const (
	DefaultTemplate          = "{count} of {max} ({percent}%) {bar} {timer} | {speed}/s | ETA {autoeta}"
	DefaultTemplateUnbounded = "{count} {bar} {timer} | {speed}/s"
)

// Marker sequences for the Spin widget. Each rune is one animation frame.
const (
	Arrow  = "→↘↓↙←↖↑↗"
	Circle = " .oO"
	Dots   = " ⡀⡄⡆⡇⣇⣧⣷⣿"
	Fade   = " ░▒▓█"
	Line   = "⎽⎼⎻⎺⎻⎼"
	Moon   = "◑◒◐◓"
	Pie    = "○◔◑◕●"
	Pixel  = "⣾⣷⣯⣟⡿⢿⣻⣽"
	HBar   = " ▏▎▍▌▋▊▉█"
	Snake  = " ▖▌▛█"
	Star   = `-\|/`
	VBar   = " ▁▂▃▄▅▆▇█"
)

// Prefixes are the unit prefixes used to scale magnitudes, one per power
// of the configured step (1000 for SI, 1024 for data).
var Prefixes = []string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// Time templates understood by FormatTime. { } tokens name day, hour,
// minute and second components; ":02" pads to two digits.
const (
	TimeDHMS = "{d}:{h:02}:{m:02}:{s:02}"
	TimeHMS  = "{h:02}:{m:02}:{s:02}"
	TimeMS   = "{m:02}:{s:02}"
	TimeS    = "{s}"

	TimeDHMSUnits = "{d}d {h}h {m}m {s}s"
	TimeHMSUnits  = "{h}h {m}m {s}s"
	TimeMSUnits   = "{m}m {s}s"
	TimeSUnits    = "{s}s"
)

// TimeAbsolute is the calendar-timestamp layout used by the Clock widget
// and by absolute ETA readouts.
const TimeAbsolute = "2006-01-02 15:04:05"

const (
	minuteSeconds = 60
	hourSeconds   = 60 * minuteSeconds
	daySeconds    = 24 * hourSeconds
)

const (
	lineClear = "\x1b[2K"
	notAvail  = "N/A"
)
