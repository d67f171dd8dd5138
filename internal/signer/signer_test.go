package signer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) *Signer {
	t.Helper()

	s, err := New("test-secret")
	require.NoError(t, err)
	return s
}

func TestNew_EmptySecret(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestNewOrderID_Format(t *testing.T) {
	s := newTestSigner(t)

	for i := 0; i < 50; i++ {
		id, err := s.NewOrderID()
		require.NoError(t, err)

		assert.Len(t, id, 12)
		assert.True(t, strings.HasPrefix(id, "MC-"))
		assert.Equal(t, strings.ToUpper(id), id)
	}
}

func TestNewOrderID_TimeComponent(t *testing.T) {
	s := newTestSigner(t)

	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	first, err := s.NewOrderID()
	require.NoError(t, err)

	s.now = func() time.Time { return time.UnixMilli(1_700_009_999_999) }
	second, err := s.NewOrderID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSign_Length(t *testing.T) {
	s := newTestSigner(t)

	sig := s.Sign("MC-ABC123", decimal.NewFromFloat(99.90))
	assert.Len(t, sig, 16)
}

func TestSign_DeterministicAtFixedTime(t *testing.T) {
	s := newTestSigner(t)
	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	first := s.Sign("MC-ABC123", decimal.NewFromFloat(80))
	second := s.Sign("MC-ABC123", decimal.NewFromFloat(80))

	assert.Equal(t, first, second)
}

func TestSign_TimestampChangesSignature(t *testing.T) {
	s := newTestSigner(t)

	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	first := s.Sign("MC-ABC123", decimal.NewFromFloat(80))

	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_001) }
	second := s.Sign("MC-ABC123", decimal.NewFromFloat(80))

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	s := newTestSigner(t)
	millis := int64(1_700_000_000_000)
	s.now = func() time.Time { return time.UnixMilli(millis) }

	amount := decimal.NewFromFloat(149.99)
	sig := s.Sign("MC-XYZ789", amount)

	assert.True(t, s.Verify("MC-XYZ789", amount, millis, sig))
	assert.False(t, s.Verify("MC-XYZ789", amount, millis+1, sig))
	assert.False(t, s.Verify("MC-XYZ789", decimal.NewFromFloat(150), millis, sig))
	assert.False(t, s.Verify("MC-OTHER1", amount, millis, sig))
}

func TestVerificationCode(t *testing.T) {
	assert.Equal(t, "AB12", VerificationCode("ab12cdef9876ffff"))
	assert.Equal(t, "AB", VerificationCode("ab"))
}
