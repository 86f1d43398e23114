package student

import (
	"strconv"
	"strings"
)

// LastAdmissionSeq returns the highest trailing sequence number among the
// records' admission numbers ("ANS/2025/37" -> 37). Used to seed the ID
// allocator at startup.
func LastAdmissionSeq(recs []Record) int {
	var max int
	for _, rec := range recs {
		parts := strings.Split(rec.AdmissionNo, "/")
		if len(parts) == 0 {
			continue
		}
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil && n > max {
			max = n
		}
	}
	return max
}
