package escrow

import (
	"testing"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
	"github.com/swaplock/swaplock/swaptest/assert"
)

func TestRecordMarshalRoundTrip(t *testing.T) {
	cases := map[string]*EscrowRecord{
		"open swap": {
			IsInitialized:               true,
			Initializer:                 testAddr("initializer"),
			TempTokenAccount:            testAddr("temp"),
			InitializerReceivingAccount: testAddr("receiving"),
			ExpectedAmount:              120,
			UnlockTime:                  1700000000,
			Timeout:                     1700003600,
		},
		"zero record": {},
	}

	for testName, record := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := record.Marshal()
			assert.Nil(t, err)
			assert.Equal(t, RecordSize, len(raw))

			got := &EscrowRecord{}
			assert.Nil(t, got.Unmarshal(raw))
			assert.Equal(t, record, got)
		})
	}
}

func TestRecordUnmarshalRejectsGarbage(t *testing.T) {
	cases := map[string]struct {
		raw     []byte
		wantErr *errors.Error
	}{
		"empty": {
			raw:     nil,
			wantErr: errors.ErrInvalidState,
		},
		"truncated": {
			raw:     make([]byte, RecordSize-1),
			wantErr: errors.ErrInvalidState,
		},
		"trailing byte": {
			raw:     make([]byte, RecordSize+1),
			wantErr: errors.ErrInvalidState,
		},
		"invalid flag": {
			raw:     append([]byte{7}, make([]byte, RecordSize-1)...),
			wantErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var record EscrowRecord
			if err := record.Unmarshal(tc.raw); !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestClosedRecordLooksUninitialized(t *testing.T) {
	open := &EscrowRecord{
		IsInitialized:               true,
		Initializer:                 testAddr("initializer"),
		TempTokenAccount:            testAddr("temp"),
		InitializerReceivingAccount: testAddr("receiving"),
		ExpectedAmount:              120,
		UnlockTime:                  1700000000,
		Timeout:                     1700003600,
	}
	raw, err := open.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, byte(1), raw[0])

	// closing a swap overwrites the storage with zeros
	closed := &EscrowRecord{}
	assert.Nil(t, closed.Unmarshal(make([]byte, RecordSize)))
	assert.Equal(t, &EscrowRecord{}, closed)
}

func TestRecordValidate(t *testing.T) {
	record := EscrowRecord{
		IsInitialized:               true,
		Initializer:                 testAddr("initializer"),
		TempTokenAccount:            testAddr("temp"),
		InitializerReceivingAccount: testAddr("receiving"),
		ExpectedAmount:              120,
		UnlockTime:                  1700000000,
		Timeout:                     1700003600,
	}
	assert.Nil(t, record.Validate())

	noInitializer := record
	noInitializer.Initializer = nil
	assert.IsErr(t, errors.ErrInvalidInput, noInitializer.Validate())

	deadWindow := record
	deadWindow.UnlockTime = deadWindow.Timeout
	assert.IsErr(t, ErrInvalidTimeOut, deadWindow.Validate())

	// an uninitialized record carries no constraints
	assert.Nil(t, (&EscrowRecord{}).Validate())
}

func testAddr(name string) swaplock.Address {
	return swaplock.NewCondition("test", "addr", []byte(name)).Address()
}
