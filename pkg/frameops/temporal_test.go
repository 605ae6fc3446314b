package frameops_test

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"tomyframe/pkg/engine/types"
	"tomyframe/pkg/frameops"
)

func TestTimestampToDatetime(t *testing.T) {
	want := time.Date(2023, time.November, 14, 22, 13, 20, 123456789, time.UTC)

	require.True(t, frameops.TimestampNsToDatetime(want.UnixNano()).Equal(want))
	require.True(t, frameops.TimestampUsToDatetime(want.UnixMicro()).Equal(want.Truncate(time.Microsecond)))
	require.True(t, frameops.TimestampMsToDatetime(want.UnixMilli()).Equal(want.Truncate(time.Millisecond)))
}

func TestFormatTimestamps(t *testing.T) {
	s := mustSeries(t, "ts", types.ColumnTypeInt64, int64(0), nil, int64(1_700_000_000_000))

	res, err := frameops.FormatTimestamps(s, frameops.Milliseconds, time.RFC3339)
	require.NoError(t, err)
	require.Equal(t, "ts", res.GetName())
	require.Equal(t, types.ColumnTypeVarchar, res.GetType())
	require.Equal(t, []any{"1970-01-01T00:00:00Z", nil, "2023-11-14T22:13:20Z"}, res.Values())

	_, err = frameops.FormatTimestamps(types.NewFloat64Series("ts", []float64{1}), frameops.TimeUnit(7), time.RFC3339)
	require.Error(t, err)
	_, err = frameops.FormatTimestamps(types.NewFloat64Series("ts", []float64{1}), frameops.Milliseconds, time.RFC3339)
	require.True(t, errors.Is(err, types.ErrTypeMismatch))
}
