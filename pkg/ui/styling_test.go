package ui

import (
	"reflect"
	"testing"
)

var styleTextTests = []struct {
	name  string
	text  Text
	ts    []Styling
	wantT Text
}{
	{"Fg", T("foo"), []Styling{FgRed},
		Text{&Segment{Style{Fg: Red}, "foo"}}},
	{"OverrideFg", Text{&Segment{Style{Fg: Green}, "foo"}}, []Styling{FgRed},
		Text{&Segment{Style{Fg: Red}, "foo"}}},
	{"MultipleSegments",
		Text{&Segment{Style{}, "foo"}, &Segment{Style{Fg: Green}, "bar"}},
		[]Styling{FgRed},
		Text{&Segment{Style{Fg: Red}, "foo"}, &Segment{Style{Fg: Red}, "bar"}}},
	{"Bg", T("foo"), []Styling{BgRed},
		Text{&Segment{Style{Bg: Red}, "foo"}}},
	{"Bold", T("foo"), []Styling{Bold},
		Text{&Segment{Style{Bold: true}, "foo"}}},
	{"NoBold", Text{&Segment{Style{Bold: true}, "foo"}}, []Styling{NoBold},
		Text{&Segment{Style{}, "foo"}}},
	{"ToggleBold", T("foo"), []Styling{ToggleBold},
		Text{&Segment{Style{Bold: true}, "foo"}}},
	{"Inverse", T("foo"), []Styling{Inverse},
		Text{&Segment{Style{Inverse: true}, "foo"}}},
	{"NilStyling", T("foo"), []Styling{nil}, T("foo")},
}

func TestStyleText(t *testing.T) {
	for _, test := range styleTextTests {
		t.Run(test.name, func(t *testing.T) {
			got := StyleText(test.text, test.ts...)
			if !reflect.DeepEqual(got, test.wantT) {
				t.Errorf("got %v, want %v", got, test.wantT)
			}
		})
	}
}

var parseStylingTests = []struct {
	s           string
	wantStyling Styling
}{
	{"default", FgDefault},
	{"red", FgRed},
	{"fg-default", FgDefault},
	{"fg-red", FgRed},
	{"fg-#102030", Fg(TrueColor(0x10, 0x20, 0x30))},

	{"bg-default", BgDefault},
	{"bg-red", BgRed},

	{"bold", Bold},
	{"no-bold", NoBold},
	{"toggle-bold", ToggleBold},

	{"red bold", Stylings(FgRed, Bold)},

	{"bad", nil},
	{"red bad", nil},
}

func TestParseStyling(t *testing.T) {
	for _, test := range parseStylingTests {
		styling := ParseStyling(test.s)
		if !reflect.DeepEqual(styling, test.wantStyling) {
			t.Errorf("ParseStyling(%q) -> %v, want %v",
				test.s, styling, test.wantStyling)
		}
	}
}
