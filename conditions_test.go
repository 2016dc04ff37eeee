package swaplock_test

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

func TestAddressPrinting(t *testing.T) {
	Convey("an address prints as base58, not raw hex", t, func() {
		addr := swaplock.NewAddress([]byte("ABCD123456LHB"))

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", []byte(addr)))
		So(addr.Validate(), ShouldBeNil)
	})

	Convey("a nil address prints a placeholder", t, func() {
		So(swaplock.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("a condition keeps extension and type readable", t, func() {
		cond := swaplock.NewCondition("sigs", "ed25519", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldStartWith, "sigs/ed25519/")
	})

	Convey("a malformed condition prints as invalid", t, func() {
		cond := swaplock.Condition("foobar")

		So(cond.String(), ShouldStartWith, "Invalid Condition")
	})
}

func TestConditionAddress(t *testing.T) {
	Convey("a condition digest is a deterministic valid address", t, func() {
		cond := swaplock.NewCondition("escrow", "seed", []byte{1, 2, 3})

		addr := cond.Address()
		So(addr.Validate(), ShouldBeNil)
		So(len(addr), ShouldEqual, swaplock.AddressLength)
		So(addr.Equals(cond.Address()), ShouldBeTrue)

		Convey("and covers every byte of the condition", func() {
			other := swaplock.NewCondition("escrow", "seed", []byte{1, 2, 4})
			So(addr.Equals(other.Address()), ShouldBeFalse)
		})
	})
}

func TestNewAddress(t *testing.T) {
	data := []byte("arbitrary condition payload")
	digest := sha256.Sum256(data)

	assert.Equal(t, swaplock.Address(digest[:]), swaplock.NewAddress(data))
	assert.Nil(t, swaplock.NewAddress(nil))
}

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		condition swaplock.Condition
		wantErr   *errors.Error
		wantExt   string
		wantTyp   string
		wantData  []byte
	}{
		"valid condition": {
			condition: swaplock.NewCondition("sigs", "ed25519", []byte("data")),
			wantExt:   "sigs",
			wantTyp:   "ed25519",
			wantData:  []byte("data"),
		},
		"data containing a separator": {
			condition: swaplock.NewCondition("escrow", "seed", []byte("with/slash")),
			wantExt:   "escrow",
			wantTyp:   "seed",
			wantData:  []byte("with/slash"),
		},
		"data containing a newline": {
			condition: swaplock.NewCondition("escrow", "seed", []byte("with\nnewline")),
			wantExt:   "escrow",
			wantTyp:   "seed",
			wantData:  []byte("with\nnewline"),
		},
		"extension too short": {
			condition: swaplock.NewCondition("ab", "ed25519", []byte("data")),
			wantErr:   errors.ErrInvalidInput,
		},
		"type too long": {
			condition: swaplock.NewCondition("sigs", "waytoolongtype", []byte("data")),
			wantErr:   errors.ErrInvalidInput,
		},
		"missing data": {
			condition: swaplock.Condition("sigs/ed25519/"),
			wantErr:   errors.ErrInvalidInput,
		},
		"not a condition at all": {
			condition: swaplock.Condition("foobar"),
			wantErr:   errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.condition.Parse()
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				require.Error(t, tc.condition.Validate())
				return
			}
			require.NoError(t, err)
			require.NoError(t, tc.condition.Validate())
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantTyp, typ)
			assert.Equal(t, tc.wantData, data)
		})
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr swaplock.Address
	}{
		"default decoding": {
			json:     `"4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw"`,
			wantAddr: seqAddress(),
		},
		"hex decoding": {
			json:     `"hex:0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"`,
			wantAddr: seqAddress(),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: swaplock.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrInvalidType,
		},
		"invalid base58 characters": {
			json:    `"00OOll"`,
			wantErr: errors.ErrInvalidInput,
		},
		"wrong length": {
			json:    `"JTmyprRLhE9"`,
			wantErr: errors.ErrInvalidInput,
		},
		"wrong hex length": {
			json:    `"hex:0102"`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a swaplock.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddr, a)
		})
	}
}

func TestParseAddress(t *testing.T) {
	addr, err := swaplock.ParseAddress("4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw")
	require.NoError(t, err)
	assert.Equal(t, seqAddress(), addr)

	addr, err = swaplock.ParseAddress("hex:0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")
	require.NoError(t, err)
	assert.Equal(t, seqAddress(), addr)

	addr, err = swaplock.ParseAddress("")
	require.NoError(t, err)
	assert.Nil(t, addr)

	_, err = swaplock.ParseAddress("JTmyprRLhE9")
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestAddressMarshalJSONRoundTrip(t *testing.T) {
	addr := seqAddress()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw"`, string(raw))

	var back swaplock.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, addr, back)

	// the empty address stays empty
	raw, err = json.Marshal(swaplock.Address(nil))
	require.NoError(t, err)
	assert.Equal(t, `""`, string(raw))
}

func TestConditionMarshalJSONRoundTrip(t *testing.T) {
	cases := map[string]struct {
		source swaplock.Condition
		want   string
	}{
		"empty condition": {
			source: nil,
			want:   `""`,
		},
		"valid condition": {
			source: swaplock.NewCondition("foo", "bar", []byte("some data")),
			want:   `"foo/bar/736F6D652064617461"`,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(raw))

			var back swaplock.Condition
			require.NoError(t, json.Unmarshal(raw, &back))
			assert.Equal(t, tc.source, back)
		})
	}
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantCond swaplock.Condition
	}{
		"empty string zeroes the condition": {
			json:     `""`,
			wantCond: nil,
		},
		"valid condition": {
			json:     `"foo/bar/736f6d652064617461"`,
			wantCond: swaplock.NewCondition("foo", "bar", []byte("some data")),
		},
		"missing sections": {
			json:    `"foo/736f6d652064617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"malformed data section": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var c swaplock.Condition
			err := json.Unmarshal([]byte(tc.json), &c)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCond, c)
		})
	}
}

func TestAddressValidate(t *testing.T) {
	assert.NoError(t, seqAddress().Validate())
	assert.Error(t, swaplock.Address(nil).Validate())
	assert.Error(t, swaplock.Address("too short").Validate())
	assert.Error(t, seqAddress()[:swaplock.AddressLength-1].Validate())
}

// seqAddress returns the address 0x01, 0x02, ... 0x20
func seqAddress() swaplock.Address {
	a := make(swaplock.Address, swaplock.AddressLength)
	for i := range a {
		a[i] = byte(i + 1)
	}
	return a
}
