package raw

import "testing"

func TestConf(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_LEVEL", "  warn ")
	t.Setenv("LOG_CALLER", "on")
	t.Setenv("LOG_JSON", "nope")
	t.Setenv("LOG_SAMPLE_EVERY", "5")
	t.Setenv("LOG_NEG", "-3")
	t.Setenv("LOG_BLANK", "   ")

	if c.Name("LEVEL") != "LOG_LEVEL" || New().Prefix("A_").Prefix("B_").Name("C") != "A_B_C" {
		t.Fatal("prefix composition")
	}
	if c.Get("LEVEL", "debug") != "warn" || c.Get("BLANK", "debug") != "debug" || c.Get("UNSET", "x") != "x" {
		t.Fatal("Get")
	}
	if !c.GetBool("CALLER", false) || !c.GetBool("JSON", true) || c.GetBool("UNSET", false) {
		t.Fatal("GetBool")
	}
	t.Setenv("LOG_CALLER", "0")
	if c.GetBool("CALLER", true) {
		t.Fatal("GetBool strconv form")
	}
	if c.GetInt("SAMPLE_EVERY", 0) != 5 || c.GetInt("NEG", 1) != 1 || c.GetInt("LEVEL", 2) != 2 {
		t.Fatal("GetInt")
	}
}
