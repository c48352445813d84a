package types

import "testing"

func TestFromString(t *testing.T) {
	sentence := FromString("  the \t dog  barks ")
	if len(sentence) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(sentence))
	}
	if sentence[1] != Token("dog") {
		t.Errorf("Expected token dog, got %s", sentence[1])
	}
	if got := sentence.String(); got != "the dog barks" {
		t.Errorf("Expected normalized sentence, got '%s'", got)
	}
	if !sentence.Equal(FromString("the dog barks")) {
		t.Errorf("Expected equal sentences")
	}
	if sentence.Equal(FromString("the dog sleeps")) {
		t.Errorf("Expected unequal sentences")
	}
}
