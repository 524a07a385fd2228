package ui

import (
	"reflect"
	"testing"
)

func red(s string) *Segment  { return &Segment{Style{Fg: Red}, s} }
func blue(s string) *Segment { return &Segment{Style{Fg: Blue}, s} }

func TestT(t *testing.T) {
	if got, want := T("test"), (Text{&Segment{Text: "test"}}); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := T("test red", FgRed, Bold), (Text{&Segment{
		Text: "test red", Style: Style{Fg: Red, Bold: true}}}); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestConcat(t *testing.T) {
	got := Concat(Text{red("lorem")}, nil, Text{blue("ipsum")})
	want := Text{red("lorem"), blue("ipsum")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCountLines(t *testing.T) {
	text := Text{red("lorem\nipsum"), blue("\ndolor")}
	if n := text.CountLines(); n != 3 {
		t.Errorf("CountLines -> %d, want 3", n)
	}
}

func TestWidth(t *testing.T) {
	text := Text{red("ab"), blue("你好")}
	if w := text.Width(); w != 6 {
		t.Errorf("Width -> %d, want 6", w)
	}
}

var trimWcwidthTests = []struct {
	text Text
	wmax int
	want Text
}{
	{Text{red("lorem"), blue("ipsum")}, 3, Text{red("lor")}},
	{Text{red("lorem"), blue("ipsum")}, 5, Text{red("lorem")}},
	{Text{red("lorem"), blue("ipsum")}, 7, Text{red("lorem"), blue("ip")}},
}

func TestTrimWcwidth(t *testing.T) {
	for _, test := range trimWcwidthTests {
		got := test.text.TrimWcwidth(test.wmax)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("TrimWcwidth(%d) -> %v, want %v", test.wmax, got, test.want)
		}
	}
}

func TestVTString(t *testing.T) {
	testTextVTString(t, []textVTStringTest{
		{T("foo"), "\033[mfoo"},
		{Concat(T("foo", Bold), T("bar", FgRed)), "\033[;1mfoo\033[;31mbar\033[m"},
		{Concat(T("foo"), T("bar", FgRed)), "\033[mfoo\033[31mbar\033[m"},
	})
}

type textVTStringTest struct {
	text         Text
	wantVTString string
}

func testTextVTString(t *testing.T, tests []textVTStringTest) {
	t.Helper()
	for _, test := range tests {
		vtString := test.text.VTString()
		if vtString != test.wantVTString {
			t.Errorf("got %q, want %q", vtString, test.wantVTString)
		}
	}
}
