package utils

import "testing"

func TestEncryptDecryptPhoneRoundTrip(t *testing.T) {
	cipher, err := EncryptPhone("81234567")
	if err != nil {
		t.Fatalf("EncryptPhone: %v", err)
	}

	plain, err := DecryptPhone(cipher)
	if err != nil {
		t.Fatalf("DecryptPhone: %v", err)
	}
	if plain != "81234567" {
		t.Errorf("round trip: got %q, want %q", plain, "81234567")
	}
}

func TestEncryptPhoneNonDeterministic(t *testing.T) {
	a, err := EncryptPhone("81234567")
	if err != nil {
		t.Fatalf("EncryptPhone: %v", err)
	}
	b, err := EncryptPhone("81234567")
	if err != nil {
		t.Fatalf("EncryptPhone: %v", err)
	}
	if string(a) == string(b) {
		t.Error("two encryptions of the same phone produced identical ciphertexts")
	}
}

func TestDecryptPhoneRejectsShortPayload(t *testing.T) {
	if _, err := DecryptPhone([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated payload")
	}
}

func TestMaskPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"81234567", "****4567"},
		{"4567", "4567"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := MaskPhone(tc.in); got != tc.want {
			t.Errorf("MaskPhone(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !VerifyPassword("correct horse battery", hash) {
		t.Error("VerifyPassword rejected the original password")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("VerifyPassword accepted a wrong password")
	}
}
