package eligibility

import (
	"fmt"

	v1 "github.com/emrgen/jobpost/apis/v1"
)

// Check reports whether age satisfies limit. A nil limit admits everyone.
// A candidate is within the maximum until the day they turn max+1.
func Check(age v1.Age, limit *v1.AgeLimit) (bool, string) {
	if limit == nil {
		return true, ""
	}

	if limit.MinAge != nil && int64(age.Years) < *limit.MinAge {
		return false, fmt.Sprintf("minimum age is %d years", *limit.MinAge)
	}

	if limit.MaxAge != nil && int64(age.Years) > *limit.MaxAge {
		reason := fmt.Sprintf("maximum age is %d years", *limit.MaxAge)
		if limit.Relaxation {
			reason += "; age relaxation may apply as per rules"
		}
		return false, reason
	}

	return true, ""
}
