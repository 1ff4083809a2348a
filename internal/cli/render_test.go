package cli

import (
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"dot only", "dot", []string{"dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid dot", []string{"dot"}, false},
		{"valid all", []string{"svg", "dot", "pdf", "png"}, false},
		{"json is not a picture", []string{"json"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "graph.gfa", "graph"},
		{"", "dir/asm.gfa2", "dir/asm"},
		{"", "-", "graph"},
		{"out.svg", "graph.gfa", "out"},
		{"out/asm", "graph.gfa", "out/asm"},
		{"out.v1", "graph.gfa", "out.v1"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	single := &renderOpts{output: "pic.png", formats: []string{"svg"}}
	if got := outputPath(single, "g.gfa", "svg"); got != "pic.png" {
		t.Errorf("outputPath() single = %q, want pic.png", got)
	}

	multi := &renderOpts{output: "pic.svg", formats: []string{"svg", "dot"}}
	if got := outputPath(multi, "g.gfa", "dot"); got != "pic.dot" {
		t.Errorf("outputPath() multi = %q, want pic.dot", got)
	}

	none := &renderOpts{formats: []string{"svg"}}
	if got := outputPath(none, "g.gfa", "svg"); got != "g.svg" {
		t.Errorf("outputPath() default = %q, want g.svg", got)
	}
}
