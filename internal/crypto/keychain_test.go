package crypto

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestSeal_ParamsShape(t *testing.T) {
	svc := NewKeyChainService(100000)

	_, params, err := svc.Seal([]byte(`{"secret":"value"}`), "master password")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if params.Enc != "AES-GCM" {
		t.Fatalf("enc = %q, want AES-GCM", params.Enc)
	}
	if params.KDF != "PBKDF2" {
		t.Fatalf("kdf = %q, want PBKDF2", params.KDF)
	}
	if params.Iterations < 100000 {
		t.Fatalf("iterations = %d, want >= 100000", params.Iterations)
	}
	if params.SchemaVersion != 1 {
		t.Fatalf("schemaVersion = %d, want 1", params.SchemaVersion)
	}

	salt, err := base64.StdEncoding.DecodeString(params.Salt)
	if err != nil {
		t.Fatalf("salt is not valid base64: %v", err)
	}
	if len(salt) != 16 {
		t.Fatalf("salt length = %d, want 16", len(salt))
	}

	iv, err := base64.StdEncoding.DecodeString(params.IV)
	if err != nil {
		t.Fatalf("iv is not valid base64: %v", err)
	}
	if len(iv) != 12 {
		t.Fatalf("iv length = %d, want 12", len(iv))
	}
}

func TestSeal_FreshSaltAndNoncePerCall(t *testing.T) {
	svc := NewKeyChainService(100000)

	_, p1, err := svc.Seal([]byte("same plaintext"), "pw")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	_, p2, err := svc.Seal([]byte("same plaintext"), "pw")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if p1.Salt == p2.Salt {
		t.Fatalf("expected salts to differ, but they are equal")
	}
	if p1.IV == p2.IV {
		t.Fatalf("expected nonces to differ, but they are equal")
	}
}

func TestSealOpen_Roundtrip(t *testing.T) {
	svc := NewKeyChainService(100000)

	plaintext := []byte(`{"login":"alice","password":"s3cr3t"}`)

	ciphertext, params, err := svc.Seal(plaintext, "master password")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if ciphertext == "" {
		t.Fatalf("expected non-empty ciphertext")
	}

	got, err := svc.Open(ciphertext, "master password", params)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("roundtrip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestOpen_WrongPassword(t *testing.T) {
	svc := NewKeyChainService(100000)

	ciphertext, params, err := svc.Seal([]byte("secret"), "right password")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if _, err := svc.Open(ciphertext, "wrong password", params); err == nil {
		t.Fatalf("expected error for wrong password, got nil")
	}
}

func TestOpen_RejectsUnknownParams(t *testing.T) {
	svc := NewKeyChainService(100000)

	ciphertext, params, err := svc.Seal([]byte("secret"), "pw")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	badCipher := params
	badCipher.Enc = "ChaCha20"
	if _, err := svc.Open(ciphertext, "pw", badCipher); err == nil {
		t.Fatalf("expected error for unsupported cipher, got nil")
	}

	badKDF := params
	badKDF.KDF = "scrypt"
	if _, err := svc.Open(ciphertext, "pw", badKDF); err == nil {
		t.Fatalf("expected error for unsupported kdf, got nil")
	}

	badSalt := params
	badSalt.Salt = "%%% not base64 %%%"
	if _, err := svc.Open(ciphertext, "pw", badSalt); err == nil {
		t.Fatalf("expected error for malformed salt, got nil")
	}
}

func TestOpen_CorruptedCiphertext(t *testing.T) {
	svc := NewKeyChainService(100000)

	ciphertext, params, err := svc.Seal([]byte("secret"), "pw")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		t.Fatalf("decode ciphertext: %v", err)
	}
	blob[0] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(blob)

	if _, err := svc.Open(tampered, "pw", params); err == nil {
		t.Fatalf("expected error for tampered ciphertext, got nil")
	}
}

func TestNewKeyChainService_RaisesLowIterations(t *testing.T) {
	svc := NewKeyChainService(1000)

	_, params, err := svc.Seal([]byte("x"), "pw")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if params.Iterations != 100000 {
		t.Fatalf("iterations = %d, want floor of 100000", params.Iterations)
	}
}
