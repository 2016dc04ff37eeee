package swaplock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/swaplock/swaplock/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"zero time as string": {
			raw:      `"1970-01-01T01:00:00+01:00"`,
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"a time as number": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInvalidInput,
		},
		"negative time as string": {
			raw:     `"1950-01-01T01:00:00+01:00"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid string": {
			raw:     `"not a time string"`,
			wantErr: errors.ErrInvalidInput,
		},
		"float number": {
			raw:     "420.5",
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil && got != tc.wantTime {
				t.Fatalf("unexpected time: %d", got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	now := AsUnixTime(time.Now())

	cases := map[string]struct {
		base  UnixTime
		delta time.Duration
		want  UnixTime
	}{
		"zero delta": {
			base:  now,
			delta: 0,
			want:  now,
		},
		"add a minute": {
			base:  now,
			delta: time.Minute,
			want:  now + 60,
		},
		"subtract an hour": {
			base:  now,
			delta: -time.Hour,
			want:  now - 3600,
		},
		"sub second delta is dropped": {
			base:  now,
			delta: 999 * time.Millisecond,
			want:  now,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.base.Add(tc.delta); got != tc.want {
				t.Fatalf("unexpected result: %d", got)
			}
		})
	}
}

func TestUnixTimeConversion(t *testing.T) {
	stdtime := time.Date(2019, time.April, 4, 10, 0, 0, 0, time.UTC)
	unix := AsUnixTime(stdtime)

	if !unix.Time().Equal(stdtime) {
		t.Fatalf("conversion is not reversible: %s", unix.Time())
	}
	if unix.IsZero() {
		t.Fatal("a set time must not be zero")
	}
	if !UnixTime(0).IsZero() {
		t.Fatal("epoch is the zero value")
	}
}

func TestUnixTimeValidate(t *testing.T) {
	if err := UnixTime(42).Validate(); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := UnixTime(0).Validate(); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := UnixTime(-5).Validate(); !errors.ErrInvalidState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}
