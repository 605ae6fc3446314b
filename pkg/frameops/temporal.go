package frameops

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"

	"tomyframe/pkg/engine/types"
)

type TimeUnit int

const (
	Milliseconds TimeUnit = iota
	Microseconds
	Nanoseconds
)

func (u TimeUnit) String() string {
	switch u {
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "us"
	case Nanoseconds:
		return "ns"
	}
	return "unknown"
}

func TimestampMsToDatetime(v int64) time.Time {
	return carbon.CreateFromTimestampMilli(v, carbon.UTC).ToStdTime()
}

func TimestampUsToDatetime(v int64) time.Time {
	return carbon.CreateFromTimestampMicro(v, carbon.UTC).ToStdTime()
}

func TimestampNsToDatetime(v int64) time.Time {
	return carbon.CreateFromTimestampNano(v, carbon.UTC).ToStdTime()
}

// FormatTimestamps renders an INT64 series of epoch timestamps in unit as
// UTC datetimes using layout. Nulls stay null.
func FormatTimestamps(s *types.Series, unit TimeUnit, layout string) (*types.Series, error) {
	var convert func(int64) time.Time
	switch unit {
	case Milliseconds:
		convert = TimestampMsToDatetime
	case Microseconds:
		convert = TimestampUsToDatetime
	case Nanoseconds:
		convert = TimestampNsToDatetime
	default:
		return nil, errors.Newf("unknown time unit %d", unit)
	}
	if s.GetType() != types.ColumnTypeInt64 && s.GetType() != types.ColumnTypeNull {
		return nil, columnError("format_timestamps", s.GetName(),
			errors.Wrapf(types.ErrTypeMismatch, "timestamps must be INT64, got %s", s.GetType()))
	}
	return types.MapValues(s, types.ColumnTypeVarchar, func(v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return convert(v.(int64)).Format(layout), nil
	})
}
