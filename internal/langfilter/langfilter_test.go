package langfilter

import "testing"

func TestMatchesEmptyTargetAlwaysPasses(t *testing.T) {
	if !Matches("fr", "", "peu importe") {
		t.Fatal("empty target should always pass")
	}
}

func TestMatchesDeclaredLanguageSameBase(t *testing.T) {
	if !Matches("en-US", "en", "") {
		t.Fatal("en-US should match target en")
	}
}

func TestMatchesDeclaredLanguageMismatch(t *testing.T) {
	if Matches("fr", "en", "") {
		t.Fatal("fr should not match target en")
	}
}

func TestMatchesFallsBackToStopwordOverlapWhenNoDeclaredLanguage(t *testing.T) {
	english := "The quick fox and the dog were in the park with the ball and it was fun for all of them today"
	if !Matches("", "en", english) {
		t.Fatal("English stopword-dense text should match target en with no declared language")
	}
}

func TestMatchesFallsBackAndRejectsWrongLanguageText(t *testing.T) {
	spanish := "El perro y el gato estaban en el parque con la pelota y todos los niños jugaban"
	if Matches("", "en", spanish) {
		t.Fatal("Spanish text should not match target en via stopword overlap")
	}
}

func TestMatchesUnparseableTargetTagPasses(t *testing.T) {
	if !Matches("en", "12345", "") {
		t.Fatal("an unparseable target tag should fail open (pass)")
	}
}
