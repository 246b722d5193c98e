package countdown

// Unit is the label shown under a catalog option. It doubles as the message
// key used to localize it.
type Unit string

const (
	UnitSeconds Unit = "sec"
	UnitMinutes Unit = "min"
)

// DefaultSeconds is the duration selected when the session starts.
const DefaultSeconds = 30

// An Option is one selectable countdown duration.
type Option struct {
	Label   string
	Seconds int
	Unit    Unit
}

// Catalog is the fixed, ordered list of durations offered to the user.
var Catalog = []Option{
	{Label: "10", Seconds: 10, Unit: UnitSeconds},
	{Label: "20", Seconds: 20, Unit: UnitSeconds},
	{Label: "30", Seconds: 30, Unit: UnitSeconds},
	{Label: "45", Seconds: 45, Unit: UnitSeconds},
	{Label: "60", Seconds: 60, Unit: UnitSeconds},
	{Label: "2", Seconds: 120, Unit: UnitMinutes},
	{Label: "3", Seconds: 180, Unit: UnitMinutes},
	{Label: "5", Seconds: 300, Unit: UnitMinutes},
}

// Lookup finds the catalog option for a duration in seconds.
func Lookup(seconds int) (Option, bool) {
	for _, option := range Catalog {
		if option.Seconds == seconds {
			return option, true
		}
	}
	return Option{}, false
}

// IndexOf returns the catalog position of a duration, or -1.
func IndexOf(seconds int) int {
	for i, option := range Catalog {
		if option.Seconds == seconds {
			return i
		}
	}
	return -1
}
