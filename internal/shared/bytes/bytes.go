package bytes

import "strconv"

var units = [...]string{"B", "KB", "MB", "GB", "TB"}

// FmtMem renders a byte count with its two most significant units, e.g. "10MB 512KB".
func FmtMem(n uint64) string {
	i := 0
	for i < len(units)-1 && n >= 1<<(10*(i+1)) {
		i++
	}
	if i == 0 {
		return strconv.FormatUint(n, 10) + units[0]
	}

	major := n >> (10 * i)
	minor := (n >> (10 * (i - 1))) & 1023
	return strconv.FormatUint(major, 10) + units[i] + " " + strconv.FormatUint(minor, 10) + units[i-1]
}
