package check

// byte unit boundaries
const (
	bytesPerKB = 1024
	bytesPerMB = 1024 * 1024
)

// Unit is the display scale for a traffic rate.
type Unit int

const (
	UnitBytes Unit = iota
	UnitKilobytes
	UnitMegabytes
)

func (u Unit) String() string {
	switch u {
	case UnitKilobytes:
		return "KB/s"
	case UnitMegabytes:
		return "MB/s"
	}
	return "B/s"
}

// Normalize scales a raw bytes/sec rate to the unit it is displayed
// in. Thresholds are still compared against the raw rate.
func Normalize(rate uint64) (float64, Unit) {
	switch {
	case rate < bytesPerKB:
		return float64(rate), UnitBytes
	case rate < bytesPerMB:
		return float64(rate) / bytesPerKB, UnitKilobytes
	default:
		return float64(rate) / bytesPerMB, UnitMegabytes
	}
}
