package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions) which are compile-time
//   detectable and not realistic in production usage.

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-imgembed/internal/yamlutil"
)

type testSettings struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    testSettings
		wantErr error
	}{
		{
			name:  "valid document",
			input: "name: probe\ncount: 3\nenabled: true\n",
			want:  testSettings{Name: "probe", Count: 3, Enabled: true},
		},
		{
			name:  "partial document keeps zero values",
			input: "name: probe\n",
			want:  testSettings{Name: "probe"},
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: yamlutil.ErrEmptyInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got testSettings
			err := yamlutil.UnmarshalStrict([]byte(tt.input), &got)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalStrict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("UnmarshalStrict() = %+v, want %+v", got, tt.want)
			}
		})
	}

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()
		var got testSettings
		err := yamlutil.UnmarshalStrict([]byte("name: probe\nnmae: typo\n"), &got)
		if err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()
		err := yamlutil.UnmarshalStrict([]byte("name: probe\n"), nil)
		if !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input rejected", func(t *testing.T) {
		t.Parallel()
		big := append([]byte("name: "), bytes.Repeat([]byte("a"), yamlutil.MaxInputSize)...)
		var got testSettings
		err := yamlutil.UnmarshalStrict(big, &got)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		var got testSettings
		err := yamlutil.UnmarshalStrict([]byte("name: [unclosed\n"), &got)
		if err == nil {
			t.Fatal("expected parse error")
		}
		if !strings.Contains(err.Error(), "yamlutil:") {
			t.Errorf("parse error not wrapped: %v", err)
		}
	})
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(testSettings{Name: "probe", Count: 2, Enabled: true})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var roundTrip testSettings
	if err := yamlutil.UnmarshalStrict(data, &roundTrip); err != nil {
		t.Fatalf("round trip UnmarshalStrict() error = %v", err)
	}
	if roundTrip != (testSettings{Name: "probe", Count: 2, Enabled: true}) {
		t.Errorf("round trip = %+v", roundTrip)
	}
}
