package utils

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3nha-forte")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "s3nha-forte" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "s3nha-forte") {
		t.Error("correct password must verify")
	}
	if CheckPassword(hash, "outra-senha") {
		t.Error("wrong password must not verify")
	}
}

func TestSanitizeStripsMarkup(t *testing.T) {
	got := Sanitize(`Praça <script>alert(1)</script>central`)
	if got != "Praça central" {
		t.Errorf("Sanitize = %q, want markup removed", got)
	}
	if Sanitize("sem html") != "sem html" {
		t.Error("plain text must pass through unchanged")
	}
}
