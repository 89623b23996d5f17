package sigverify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportKeyFile_Nonexistent(t *testing.T) {
	var v Verifier
	err := v.ImportKeyFile(filepath.Join(t.TempDir(), "missing.asc"))
	if err == nil {
		t.Fatal("expected error for nonexistent key file")
	}
	if !strings.Contains(err.Error(), "open key file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestImportKeyFile_Invalid(t *testing.T) {
	var v Verifier
	keyPath := filepath.Join(t.TempDir(), "bad.asc")
	if err := os.WriteFile(keyPath, []byte("not a pgp key"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := v.ImportKeyFile(keyPath); err == nil {
		t.Fatal("expected error for invalid key material")
	}
	if v.KeyCount() != 0 {
		t.Errorf("keyring should stay empty after a failed import, got %d", v.KeyCount())
	}
}

func TestVerifyFile_RequiresKeys(t *testing.T) {
	var v Verifier
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "stream.xml")
	sigPath := filepath.Join(dir, "stream.xml.asc")
	if err := os.WriteFile(dataPath, []byte("<doc/>"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sigPath, []byte("sig"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := v.VerifyFile(dataPath, sigPath)
	if err == nil {
		t.Fatal("expected error when no keys are imported")
	}
	if !strings.Contains(err.Error(), "no keys imported") {
		t.Errorf("unexpected error: %v", err)
	}
}
