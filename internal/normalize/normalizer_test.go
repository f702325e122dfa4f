package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"stopwords removed", "This is a test.", "test"},
		{"punctuation and case", "This example has PUNCTUATION!", "example punctuation"},
		{"plural lemmatized", "Another example, with some stop words.", "another example stop word"},
		{"whitespace trimmed", "  Leading and trailing spaces.  ", "leading trailing space"},
		{"numbers dropped", "123 numbers should be ignored.", "number ignored"},
		{"empty input", "", ""},
		{"only stopwords", "is the a an", ""},
		{"mixed alnum token dropped whole", "that p0rn word", "word"},
		{"contraction splits to stopwords", "don't stop believing", "stop believing"},
		{"s-final singular kept", "the gas price", "gas price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()

	inputs := []string{
		"This is a test.",
		"Another example, with some stop words.",
		"Vancouver is great!",
		"churches and classes and cities",
		"the mice ate the children's shoes",
		"dos and don'ts",
		"",
		"already normalized token string",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		assert.Equal(t, once, twice, "Normalize must be idempotent for %q", input)
	}
}

func TestNormalizeOrderPreserved(t *testing.T) {
	n := New()
	got := n.Normalize("zebra apple mango")
	assert.Equal(t, "zebra apple mango", got)
}

func TestLemmatize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"words", "word"},
		{"spaces", "space"},
		{"cities", "city"},
		{"churches", "church"},
		{"classes", "class"},
		{"boxes", "box"},
		{"wishes", "wish"},
		{"men", "man"},
		{"children", "child"},
		{"species", "species"},
		{"bus", "bus"},
		{"analysis", "analysis"},
		{"class", "class"},
		{"word", "word"},

		// Singulars ending in "s" stay whole.
		{"gas", "gas"},
		{"bias", "bias"},
		{"lens", "lens"},
		{"canvas", "canvas"},
		{"yes", "yes"},
		{"atlas", "atlas"},
		{"chaos", "chaos"},
		{"clothes", "clothes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Lemmatize(tt.in), "Lemmatize(%q)", tt.in)
	}
}

func TestLemmatizeFixedPoint(t *testing.T) {
	words := []string{"words", "cities", "churches", "classes", "men", "mice", "boxes", "series"}
	for _, w := range words {
		once := Lemmatize(w)
		assert.Equal(t, once, Lemmatize(once), "lemma of %q must be stable", w)
	}
}
