// Package signer generates human-shareable order ids and tamper-evident
// order signatures. A signature binds (order id, total, signing time) under
// an HMAC secret; the short uppercase prefix is surfaced to the customer as
// the verification code staff cross-check at fulfilment time.
package signer

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// orderIDLength caps the shareable order id.
	orderIDLength = 12

	// signatureLength is the stored hex prefix of the HMAC.
	signatureLength = 16

	// verificationCodeLength is the customer-visible prefix of the signature.
	verificationCodeLength = 4

	orderIDPrefix = "MC-"
)

var base36Max = big.NewInt(36)

// Signer mints order ids and signatures.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// New creates a Signer. The secret must not be empty; enforcing a real
// secret in production is the config layer's job.
func New(secret string) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}
	return &Signer{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// NewOrderID generates a human-shareable order id: a fixed prefix, the
// current time in base36 and random base36 padding, truncated to 12
// characters and uppercased.
func (s *Signer) NewOrderID() (string, error) {
	ts := strconv.FormatInt(s.now().UnixMilli(), 36)

	var random strings.Builder
	for random.Len() < orderIDLength {
		n, err := rand.Int(rand.Reader, base36Max)
		if err != nil {
			return "", fmt.Errorf("failed to generate order id: %w", err)
		}
		random.WriteString(strconv.FormatInt(n.Int64(), 36))
	}

	id := orderIDPrefix + ts + random.String()
	if len(id) > orderIDLength {
		id = id[:orderIDLength]
	}
	return strings.ToUpper(id), nil
}

// Sign produces the order signature: the hex HMAC-SHA256 of
// "orderID|amount|signingMillis", truncated to 16 characters. The embedded
// timestamp makes the signature origin-bound rather than reproducible.
func (s *Signer) Sign(orderID string, amount decimal.Decimal) string {
	return s.signAt(orderID, amount, s.now().UnixMilli())
}

// Verify recomputes the signature for the given signing time and compares it
// in constant time against the stored value.
func (s *Signer) Verify(orderID string, amount decimal.Decimal, signedAtMillis int64, signature string) bool {
	expected := s.signAt(orderID, amount, signedAtMillis)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerificationCode returns the customer-visible prefix of a signature.
func VerificationCode(signature string) string {
	if len(signature) < verificationCodeLength {
		return strings.ToUpper(signature)
	}
	return strings.ToUpper(signature[:verificationCodeLength])
}

func (s *Signer) signAt(orderID string, amount decimal.Decimal, millis int64) string {
	payload := fmt.Sprintf("%s|%s|%d", orderID, amount.StringFixed(2), millis)

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))

	return hex.EncodeToString(mac.Sum(nil))[:signatureLength]
}
