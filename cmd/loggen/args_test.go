package main

import (
	"reflect"
	"testing"

	"github.com/wayneeseguin/loggen/pkg/generator"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		dir     string
		sizes   []float64
		wantErr string
	}{
		{name: "single size", args: []string{"1.5"}, sizes: []float64{1.5}},
		{name: "several sizes", args: []string{"1.5", "0.5", "1"}, sizes: []float64{1.5, 0.5, 1}},
		{name: "output dir override", args: []string{"./out", "2"}, dir: "./out", sizes: []float64{2}},
		{name: "absolute output dir", args: []string{"/var/tmp/logs", "0.1"}, dir: "/var/tmp/logs", sizes: []float64{0.1}},
		{name: "leading dot number is a size", args: []string{".5"}, sizes: []float64{0.5}},
		{name: "no arguments", args: nil, wantErr: "not enough arguments"},
		{name: "only a directory", args: []string{"./out"}, wantErr: "not enough arguments"},
		{name: "not a number", args: []string{"1", "abc"}, wantErr: "argument `abc` cannot be parsed, cannot be converted to float"},
		{name: "zero", args: []string{"0"}, wantErr: "argument `0` cannot be parsed, it must be greater than 0"},
		{name: "negative", args: []string{"-1"}, wantErr: "argument `-1` cannot be parsed, it must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, spec, err := parseArgs(tt.args)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Expected error %q, got nil", tt.wantErr)
				}
				if generator.CodeOf(err) != generator.ErrCodeArgument {
					t.Errorf("Expected argument error, got %v", generator.CodeOf(err))
				}
				if got := generator.CauseOf(err).Error(); got != tt.wantErr {
					t.Errorf("Expected message %q, got %q", tt.wantErr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if dir != tt.dir {
				t.Errorf("Expected dir %q, got %q", tt.dir, dir)
			}
			if !reflect.DeepEqual(spec.Sizes(), tt.sizes) {
				t.Errorf("Expected sizes %v, got %v", tt.sizes, spec.Sizes())
			}
		})
	}
}
