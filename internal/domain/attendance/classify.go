package attendance

import "strings"

// Status is the canonical attendance status of a day.
type Status string

const (
	StatusUnmarked Status = "unmarked"
	StatusPresent  Status = "present"
	StatusLate     Status = "late"
	StatusAbsent   Status = "absent"
	StatusLeave    Status = "leave"
)

// LeaveKind sub-classifies a leave day. The empty kind means unspecified.
type LeaveKind string

const (
	LeaveUnspecified LeaveKind = ""
	LeavePaid        LeaveKind = "paid"
	LeaveUnpaid      LeaveKind = "unpaid"
)

// Classification is the normalized form of a raw (status, leave type) pair.
type Classification struct {
	Status    Status
	LeaveKind LeaveKind
}

// Known reports whether Status is one of the canonical statuses. Unrecognized
// statuses are passed through by Classify and should not be counted.
func (c Classification) Known() bool {
	switch c.Status {
	case StatusUnmarked, StatusPresent, StatusLate, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// PaidLeave reports whether the day is a leave day that counts as payable.
// Unspecified and free-text leave kinds are treated as paid.
func (c Classification) PaidLeave() bool {
	return c.Status == StatusLeave && c.LeaveKind != LeaveUnpaid
}

// Classify normalizes a free-text status and leave type. It never fails.
func Classify(rawStatus, rawLeaveType string) Classification {
	st := strings.ToLower(strings.TrimSpace(rawStatus))
	lt := LeaveKind(strings.ToLower(strings.TrimSpace(rawLeaveType)))

	switch st {
	case "", "-", "unmarked":
		return Classification{Status: StatusUnmarked}
	case "present", "late", "absent":
		return Classification{Status: Status(st)}
	}

	if strings.HasPrefix(st, "leave") {
		if lt == LeaveUnspecified {
			switch {
			case strings.Contains(st, "unpaid"):
				lt = LeaveUnpaid
			case strings.Contains(st, "paid"):
				lt = LeavePaid
			}
		}
		return Classification{Status: StatusLeave, LeaveKind: lt}
	}

	return Classification{Status: Status(st), LeaveKind: lt}
}
