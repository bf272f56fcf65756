package portspec

import "testing"

func TestParseReference(t *testing.T) {
	cases := []struct {
		in      string
		want    Reference
		wantErr bool
	}{
		{in: "zlib", want: Reference{Name: "zlib"}},
		{in: "zlib:x64-linux", want: Reference{Name: "zlib", Triplet: "x64-linux"}},
		{in: "zlib[core]", want: Reference{Name: "zlib", Feature: "core"}},
		{in: "curl[ssl]:x64-linux", want: Reference{Name: "curl", Feature: "ssl", Triplet: "x64-linux"}},
		{in: "curl[*]", want: Reference{Name: "curl", Feature: "*"}},
		{in: "", wantErr: true},
		{in: "curl[ssl", wantErr: true},
	}

	for _, c := range cases {
		got, err := ParseReference(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseReference(%q): expected error, got %+v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseReference(%q): unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseReference(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("") != CoreFeature {
		t.Errorf("Normalize(\"\") should yield core")
	}
	if Normalize("ssl") != "ssl" {
		t.Errorf("Normalize should pass through concrete feature names")
	}
}

func TestWithTriplet(t *testing.T) {
	r := Reference{Name: "zlib"}
	if got := r.WithTriplet("x64-linux"); got != (PackageSpec{Name: "zlib", Triplet: "x64-linux"}) {
		t.Errorf("WithTriplet default failed: %+v", got)
	}
	r2 := Reference{Name: "zlib", Triplet: "arm64-osx"}
	if got := r2.WithTriplet("x64-linux"); got != (PackageSpec{Name: "zlib", Triplet: "arm64-osx"}) {
		t.Errorf("WithTriplet explicit failed: %+v", got)
	}
}
