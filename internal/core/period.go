package core

import "fmt"

// PeriodType selects the bucket size of a usage history query.
type PeriodType string

const (
	PeriodHour  PeriodType = "hour"
	PeriodDay   PeriodType = "day"
	PeriodMonth PeriodType = "month"
)

var ValidPeriodTypes = []PeriodType{
	PeriodHour,
	PeriodDay,
	PeriodMonth,
}

func (p PeriodType) Valid() bool {
	for _, v := range ValidPeriodTypes {
		if v == p {
			return true
		}
	}
	return false
}

// Next returns the period step positions away, wrapping around.
func (p PeriodType) Next(step int) PeriodType {
	idx := 0
	for i, v := range ValidPeriodTypes {
		if v == p {
			idx = i
			break
		}
	}
	n := len(ValidPeriodTypes)
	return ValidPeriodTypes[((idx+step)%n+n)%n]
}

func ParsePeriodType(s string) (PeriodType, error) {
	p := PeriodType(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown period type %q (valid: hour, day, month)", s)
	}
	return p, nil
}

// Tab is a dashboard tab.
type Tab string

const (
	TabLimits  Tab = "limits"
	TabHistory Tab = "history"
)

var ValidTabs = []Tab{TabLimits, TabHistory}

func (t Tab) Valid() bool {
	return t == TabLimits || t == TabHistory
}

func ParseTab(s string) (Tab, error) {
	t := Tab(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tab %q (valid: limits, history)", s)
	}
	return t, nil
}
