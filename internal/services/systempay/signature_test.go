package systempay

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testKey = "1234567890abcdef"

func sampleFields() map[string]string {
	return map[string]string{
		"vads_action_mode": "INTERACTIVE",
		"vads_amount":      "1028",
		"vads_ctx_mode":    "TEST",
		"vads_currency":    "978",
		"vads_site_id":     "12345678",
		"vads_trans_id":    "000042",
	}
}

func TestSign_MatchesCanonicalDigest(t *testing.T) {
	fields := map[string]string{
		"vads_amount":  "1028",
		"vads_site_id": "12345",
	}

	// Канон: значения в порядке имен, каждое с "+", секрет в конце без разделителя.
	sum := sha1.Sum([]byte("1028+12345+" + testKey))
	expected := hex.EncodeToString(sum[:])

	assert.Equal(t, expected, Sign(fields, testKey))
}

func TestSign_EmptyValueContributesBarePlus(t *testing.T) {
	fields := map[string]string{
		"vads_a": "",
		"vads_b": "x",
	}

	sum := sha1.Sum([]byte("+x+" + testKey))
	assert.Equal(t, hex.EncodeToString(sum[:]), Sign(fields, testKey))
}

func TestSign_SignatureFieldIsExcluded(t *testing.T) {
	fields := sampleFields()
	withSig := sampleFields()
	withSig[SignatureFieldName] = "deadbeef"

	assert.Equal(t, Sign(fields, testKey), Sign(withSig, testKey))
}

func TestSign_InsertionOrderDoesNotMatter(t *testing.T) {
	forward := make(map[string]string)
	forward["vads_amount"] = "1028"
	forward["vads_currency"] = "978"
	forward["vads_trans_id"] = "000042"

	backward := make(map[string]string)
	backward["vads_trans_id"] = "000042"
	backward["vads_currency"] = "978"
	backward["vads_amount"] = "1028"

	assert.Equal(t, Sign(forward, testKey), Sign(backward, testKey))
}

func TestVerify_RoundTrip(t *testing.T) {
	fields := sampleFields()
	sig := Sign(fields, testKey)

	assert.True(t, Verify(fields, sig, testKey))
}

func TestVerify_RejectsAnySingleCharacterMutation(t *testing.T) {
	fields := sampleFields()
	sig := Sign(fields, testKey)

	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'f' {
			mutated[i] = '0'
		} else {
			mutated[i] = 'f'
		}
		assert.False(t, Verify(fields, string(mutated), testKey),
			"mutation at position %d must invalidate the signature", i)
	}
}

func TestVerify_AnyFieldChangeInvalidates(t *testing.T) {
	fields := sampleFields()
	sig := Sign(fields, testKey)

	for name := range fields {
		tampered := sampleFields()
		tampered[name] = tampered[name] + "x"
		assert.False(t, Verify(tampered, sig, testKey),
			"changing %q must invalidate the signature", name)
	}
}

func TestVerify_ExtraAndMissingFieldsMismatch(t *testing.T) {
	fields := sampleFields()
	sig := Sign(fields, testKey)

	extra := sampleFields()
	extra["vads_cust_email"] = "client@shop.example"
	assert.False(t, Verify(extra, sig, testKey))

	missing := sampleFields()
	delete(missing, "vads_amount")
	assert.False(t, Verify(missing, sig, testKey))
}

func TestVerify_WrongKeyFails(t *testing.T) {
	fields := sampleFields()
	sig := Sign(fields, testKey)

	assert.False(t, Verify(fields, sig, "another_key"))
}
