package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPIN(t *testing.T) {
	valid := []string{"1234", "12345", "123456", "0000"}
	invalid := []string{"123", "1234567", "12a4", "", "12 34"}
	for _, pin := range valid {
		if !IsValidPIN(pin) {
			t.Errorf("IsValidPIN(%q) = false, want true", pin)
		}
	}
	for _, pin := range invalid {
		if IsValidPIN(pin) {
			t.Errorf("IsValidPIN(%q) = true, want false", pin)
		}
	}
}

func TestIsValidScore(t *testing.T) {
	for score := 1; score <= 5; score++ {
		if !IsValidScore(score) {
			t.Errorf("IsValidScore(%d) = false, want true", score)
		}
	}
	for _, score := range []int{-1, 0, 6} {
		if IsValidScore(score) {
			t.Errorf("IsValidScore(%d) = true, want false", score)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "pin", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; pin: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "pin", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "pin": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestIsValidDayRange(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{"2024-01-15", "2024-01-21", true},
		{"2024-01-21", "2024-01-15", false},
		{"2024-1-15", "2024-01-21", false},
		{"", "2024-01-21", false},
	}
	for _, c := range cases {
		if got := IsValidDayRange(c.from, c.to); got != c.want {
			t.Errorf("IsValidDayRange(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestValidationErrors_AddKeepsFirstMessage(t *testing.T) {
	var errs ValidationErrors
	errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
	errs.Add("date_from", "date_from must not be after date_to")

	if len(errs) != 2 {
		t.Fatalf("len = %d, want 2", len(errs))
	}
	if got := errs.ToMap()["date_from"]; got != "date_from must be in YYYY-MM-DD format" {
		t.Errorf("ToMap kept %q", got)
	}
}
