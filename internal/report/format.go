package report

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Count formats an integer with thousands separators: 1234567 -> "1,234,567".
func Count(n int64) string {
	return humanize.Comma(n)
}

// maxTenths bounds inputs that round to tenths exactly within an int64.
const maxTenths = 1 << 52

// Seconds rounds to one decimal place and adds thousands separators:
// 1234.56 -> "1,234.6", 3 -> "3.0". Values too large to round exactly,
// and NaN or Inf, are printed as is.
func Seconds(s float64) string {
	if math.IsNaN(s) || math.IsInf(s, 0) || math.Abs(s) >= maxTenths {
		return strconv.FormatFloat(s, 'g', -1, 64)
	}
	tenths := int64(math.Round(s * 10))
	sign := ""
	if tenths < 0 {
		sign = "-"
		tenths = -tenths
	}
	return sign + humanize.Comma(tenths/10) + "." + strconv.FormatInt(tenths%10, 10)
}
