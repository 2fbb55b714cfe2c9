package cli

import (
	"reflect"
	"testing"
)

func TestParseRunArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []sourceGroup
		wantErr bool
	}{
		{
			name: "plain files use the default pattern",
			args: []string{"a.log", "b.log"},
			want: []sourceGroup{{files: []string{"a.log", "b.log"}}},
		},
		{
			name: "single regex group",
			args: []string{"-r", `^Date: ([^ ]+)`, "a.log", "b.log"},
			want: []sourceGroup{{pattern: `^Date: ([^ ]+)`, files: []string{"a.log", "b.log"}}},
		},
		{
			name: "double dash treats later tokens as files",
			args: []string{"-r", "p1", "a.log", "--", "-weird.log"},
			want: []sourceGroup{{pattern: "p1", files: []string{"a.log", "-weird.log"}}},
		},
		{
			name: "mixed default and regex groups",
			args: []string{"x.log", "-r", "p1", "a.log", "-r", "p2", "b.log", "c.log"},
			want: []sourceGroup{
				{files: []string{"x.log"}},
				{pattern: "p1", files: []string{"a.log"}},
				{pattern: "p2", files: []string{"b.log", "c.log"}},
			},
		},
		{
			name:    "regex without files",
			args:    []string{"-r", "p1"},
			wantErr: true,
		},
		{
			name:    "regex without value",
			args:    []string{"a.log", "-r"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"--frobnicate", "a.log"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := parseRunArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseRunArgs() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRunArgs() error = %v", err)
			}
			if !reflect.DeepEqual(spec.groups, tt.want) {
				t.Errorf("groups = %+v, want %+v", spec.groups, tt.want)
			}
		})
	}
}

func TestParseRunArgsFlags(t *testing.T) {
	spec, err := parseRunArgs([]string{"-v", "-o", "json", "-c", "cfg.yaml", "a.log"})
	if err != nil {
		t.Fatalf("parseRunArgs() error = %v", err)
	}
	if !spec.verbose {
		t.Error("verbose not set")
	}
	if spec.format != "json" {
		t.Errorf("format = %q, want json", spec.format)
	}
	if spec.configPath != "cfg.yaml" {
		t.Errorf("configPath = %q", spec.configPath)
	}

	spec, err = parseRunArgs([]string{"--help"})
	if err != nil {
		t.Fatalf("parseRunArgs() error = %v", err)
	}
	if !spec.help {
		t.Error("help not set")
	}
}
