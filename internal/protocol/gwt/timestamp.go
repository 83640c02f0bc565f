package gwt

import (
	"fmt"
	"math"
	"time"

	"github.com/danmuck/skemawire/internal/protocol"
)

// MinuteEpoch is the origin of inline epoch-minutes timestamps.
var MinuteEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// maxEpochMinutes keeps minutes*60 inside int64 seconds.
const maxEpochMinutes = math.MaxInt64 / 60

// MinutesTime converts minutes since MinuteEpoch into a UTC instant.
func MinutesTime(minutes int64) (time.Time, error) {
	if minutes > maxEpochMinutes || minutes < -maxEpochMinutes {
		return time.Time{}, fmt.Errorf("%w: %d minutes out of range", protocol.ErrInvalidTimestamp, minutes)
	}
	return time.Unix(minutes*60, 0).UTC(), nil
}

// Minutes is the inverse of MinutesTime, truncated to whole minutes.
func Minutes(t time.Time) int64 {
	return t.Unix() / 60
}

// FieldsTime builds a wall-clock time from wire fields: year offset from 1900
// and a zero-based month. Out-of-range components are rejected rather than
// normalized.
func FieldsTime(yearOffset, month, day, hour, minute, second int64, loc *time.Location) (time.Time, error) {
	year := yearOffset + 1900
	switch {
	case year < 1 || year > 9999:
		return time.Time{}, fmt.Errorf("%w: year %d", protocol.ErrInvalidTimestamp, year)
	case month < 0 || month > 11:
		return time.Time{}, fmt.Errorf("%w: month %d", protocol.ErrInvalidTimestamp, month)
	case hour < 0 || hour > 23:
		return time.Time{}, fmt.Errorf("%w: hour %d", protocol.ErrInvalidTimestamp, hour)
	case minute < 0 || minute > 59:
		return time.Time{}, fmt.Errorf("%w: minute %d", protocol.ErrInvalidTimestamp, minute)
	case second < 0 || second > 59:
		return time.Time{}, fmt.Errorf("%w: second %d", protocol.ErrInvalidTimestamp, second)
	}
	if loc == nil {
		loc = time.UTC
	}
	t := time.Date(int(year), time.Month(month+1), int(day), int(hour), int(minute), int(second), 0, loc)
	if day < 1 || t.Day() != int(day) {
		return time.Time{}, fmt.Errorf("%w: day %d of %d-%02d", protocol.ErrInvalidTimestamp, day, year, month+1)
	}
	return t, nil
}

// decodeUDate reads a tag string followed by six integer components.
func decodeUDate(d *Decoder, _ string) (Object, error) {
	tag, err := d.cursor.PopString()
	if err != nil {
		return nil, err
	}
	var parts [6]int64
	for i := range parts {
		if parts[i], err = d.cursor.PopInt(); err != nil {
			return nil, err
		}
	}
	t, err := FieldsTime(parts[0], parts[1], parts[2], parts[3], parts[4], parts[5], d.loc)
	if err != nil {
		return nil, err
	}
	return Timestamp{Time: t, Encoding: EncodingFields, Tag: tag}, nil
}
