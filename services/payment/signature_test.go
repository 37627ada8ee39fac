package payment

import "testing"

func TestVerifySignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"id":"evt_123","type":"payment.succeeded"}`)
	secret := "whsec_test"

	sig := ComputeSignature(payload, secret)
	if !VerifySignature(payload, sig, secret) {
		t.Error("signature computed by ComputeSignature must verify")
	}
	if !VerifySignature(payload, "sha256="+sig, secret) {
		t.Error("prefixed signature header must verify")
	}
}

func TestVerifySignatureRejections(t *testing.T) {
	payload := []byte(`{"id":"evt_123"}`)
	secret := "whsec_test"
	sig := ComputeSignature(payload, secret)

	tests := []struct {
		name      string
		payload   []byte
		signature string
		secret    string
	}{
		{"tampered payload", []byte(`{"id":"evt_124"}`), sig, secret},
		{"wrong secret", payload, sig, "whsec_other"},
		{"empty signature", payload, "", secret},
		{"empty secret fails closed", payload, sig, ""},
		{"non-hex signature", payload, "not-hex!", secret},
		{"truncated signature", payload, sig[:16], secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifySignature(tt.payload, tt.signature, tt.secret) {
				t.Error("signature verified, want rejection")
			}
		})
	}
}
