package journal

import "testing"

func TestFormatBullets_AlternatesByDepth(t *testing.T) {
	in := "- a\n * b\n  . c\n   - d\nplain text\n\n    * e"
	want := "- a\n . b\n  - c\n   . d\nplain text\n\n    - e"
	if got := FormatBullets(in); got != want {
		t.Errorf("FormatBullets = %q, want %q", got, want)
	}
}

func TestFormatBullets_LeavesNonBullets(t *testing.T) {
	in := "-no space\n*bold*\n  text - with dash\n   \n1. numbered"
	if got := FormatBullets(in); got != in {
		t.Errorf("FormatBullets = %q, want unchanged", got)
	}
}

func TestFormatBullets_KeepsIndentation(t *testing.T) {
	in := "\t* tabbed"
	if got := FormatBullets(in); got != "\t. tabbed" {
		t.Errorf("FormatBullets = %q", got)
	}
}

func TestFormatBullets_DropsFinalNewline(t *testing.T) {
	if got := FormatBullets("- a\n"); got != "- a" {
		t.Errorf("FormatBullets = %q", got)
	}
	if got := FormatBullets(""); got != "" {
		t.Errorf("FormatBullets(\"\") = %q", got)
	}
}

func TestFormatBullets_Idempotent(t *testing.T) {
	inputs := []string{
		"- a\n * b\n  . c",
		"* x\n\n  * y\n     - z",
		"no bullets at all",
		" - Task 1\n - Task 2",
	}
	for _, in := range inputs {
		once := FormatBullets(in)
		if twice := FormatBullets(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
