package helpers

import "testing"

func TestIsPasswordStrong(t *testing.T) {
	tests := map[string]bool{
		"Celebrate#2025": true,
		"short1!A":       true,
		"short1A":        false,
		"alllowercase1!": false,
		"ALLUPPER1!":     false,
		"NoDigits!!":     false,
		"NoSpecial123":   false,
	}
	for pw, want := range tests {
		if got := IsPasswordStrong(pw); got != want {
			t.Errorf("IsPasswordStrong(%q) = %v, want %v", pw, got, want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Celebrate#2025")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Celebrate#2025" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "Celebrate#2025") {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "celebrate#2025") {
		t.Error("CheckPassword accepted the wrong password")
	}

	again, _ := HashPassword("Celebrate#2025")
	if again == hash {
		t.Error("hashes should be salted")
	}
}

func TestStringTrim(t *testing.T) {
	if got := StringTrim("  \"6622c0ffee\" "); got != "6622c0ffee" {
		t.Errorf("StringTrim = %q", got)
	}
}
