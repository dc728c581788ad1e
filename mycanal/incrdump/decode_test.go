package incrdump

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huangjunwen/mytemporal/mycanal"
	"github.com/huangjunwen/mytemporal/temporal"
)

func TestFromBinlogValue(t *testing.T) {
	assert := assert.New(t)

	loc := time.FixedZone("UTC+8", 8*3600)

	for _, testCase := range []struct {
		Kind   temporal.Kind
		Val    interface{}
		Expect temporal.Value
	}{
		{temporal.Date, "2021-01-28", temporal.LocalDate{Year: 2021, Month: time.January, Day: 28}},
		{temporal.Date, time.Date(2021, time.January, 28, 0, 0, 0, 0, time.UTC), temporal.LocalDate{Year: 2021, Month: time.January, Day: 28}},
		{temporal.Time, "17:29:04", temporal.Duration{Seconds: 62944}},
		{temporal.Time, []byte("17:29:04.000001"), temporal.Duration{Seconds: 62944, Nanos: 1000}},
		{temporal.Time, 17*time.Hour + 29*time.Minute + 4*time.Second, temporal.Duration{Seconds: 62944}},
		{temporal.DateTime, "2021-01-28 17:29:04", temporal.NewLocalDateTime(2021, time.January, 28, 17, 29, 4, 0)},
		{temporal.DateTime, time.Date(2021, time.January, 28, 17, 29, 4, 0, loc), temporal.NewLocalDateTime(2021, time.January, 28, 17, 29, 4, 0)},
		{temporal.Timestamp, "2021-01-28 09:29:04", temporal.ZonedDateTimeOf(time.Date(2021, time.January, 28, 9, 29, 4, 0, time.UTC))},
		{temporal.Timestamp, time.Date(2021, time.January, 28, 17, 29, 4, 0, loc), temporal.ZonedDateTimeOf(time.Date(2021, time.January, 28, 9, 29, 4, 0, time.UTC))},
	} {
		v, ok := FromBinlogValue(testCase.Kind, testCase.Val)
		assert.True(ok, "%v %#v", testCase.Kind, testCase.Val)
		assert.Equal(testCase.Expect, v, "%v %#v", testCase.Kind, testCase.Val)
	}

	for _, testCase := range []struct {
		Kind temporal.Kind
		Val  interface{}
	}{
		{temporal.Date, "0000-00-00"},
		{temporal.Date, time.Time{}},
		{temporal.Date, int64(18655)},
		{temporal.Time, "bad"},
		{temporal.Time, 62944},
		{temporal.DateTime, "0000-00-00 00:00:00"},
		{temporal.DateTime, time.Time{}},
		{temporal.Timestamp, "0000-00-00 00:00:00"},
		{temporal.Timestamp, time.Time{}},
		{temporal.Timestamp, int64(1611826144)},
		{temporal.Kind(9), "2021-01-28"},
	} {
		_, ok := FromBinlogValue(testCase.Kind, testCase.Val)
		assert.False(ok, "%v %#v", testCase.Kind, testCase.Val)
	}
}

func TestFromBinlogTimestampString(t *testing.T) {
	assert := assert.New(t)

	// Run as if the process were in UTC+8.
	local := time.Local
	time.Local = time.FixedZone("CST", 8*3600)
	defer func() { time.Local = local }()

	syncerCfg := (&mycanal.Config{ServerId: 1001}).ToBinlogSyncerCfg()
	instant := time.Date(2021, time.January, 28, 9, 29, 4, 0, time.UTC)

	// go-mysql formats TIMESTAMP strings from time.Unix in TimestampStringLocation.
	text := time.Unix(instant.Unix(), 0).In(syncerCfg.TimestampStringLocation).Format("2006-01-02 15:04:05")
	assert.Equal("2021-01-28 09:29:04", text)

	v, ok := FromBinlogValue(temporal.Timestamp, text)
	assert.True(ok)
	assert.Equal(temporal.ZonedDateTimeOf(instant), v)

	n := temporal.Must(
		temporal.WithTimestampZone("UTC+8"),
		temporal.WithPattern(temporal.Timestamp, "yyyy-MM-dd HH:mm:ss"),
	)
	s, ok := n.ConvertTimestamp(v)
	assert.True(ok)
	assert.Equal("2021-01-28 17:29:04", s)

	// Without TimestampStringLocation the text would be the local wall clock.
	assert.Equal("2021-01-28 17:29:04", time.Unix(instant.Unix(), 0).Format("2006-01-02 15:04:05"))
}
