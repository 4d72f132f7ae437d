package zcol

import "time"

// A date is stored as the number of days since the Unix epoch in a
// uint16 and a datetime as the number of seconds since the Unix epoch in
// a uint32.
type TypeOfDate struct{}

func (t *TypeOfDate) ID() int {
	return IDDate
}

func (t *TypeOfDate) String() string {
	return "date"
}

func (t *TypeOfDate) Equal(u Type) bool {
	return equalPrimitive(t, u)
}

type TypeOfDateTime struct{}

func (t *TypeOfDateTime) ID() int {
	return IDDateTime
}

func (t *TypeOfDateTime) String() string {
	return "datetime"
}

func (t *TypeOfDateTime) Equal(u Type) bool {
	return equalPrimitive(t, u)
}

const secondsPerDay = 24 * 60 * 60

func EncodeDate(t time.Time) uint16 {
	return uint16(t.Unix() / secondsPerDay)
}

func DecodeDate(days uint16) time.Time {
	return time.Unix(int64(days)*secondsPerDay, 0).UTC()
}

func EncodeDateTime(t time.Time) uint32 {
	return uint32(t.Unix())
}

func DecodeDateTime(secs uint32) time.Time {
	return time.Unix(int64(secs), 0).UTC()
}
