package tools

import "testing"

func TestValidate(t *testing.T) {
	r := NewRegistry(30)

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{
			name: "valid script",
			tool: NameExecuteScript,
			args: map[string]any{"script": "Get-Process"},
			want: "",
		},
		{
			name: "valid script with timeout",
			tool: NameExecuteScript,
			args: map[string]any{"script": "Get-Process", "timeout": float64(60)},
			want: "",
		},
		{
			name: "missing script",
			tool: NameExecuteScript,
			args: map[string]any{},
			want: "Missing required argument: script",
		},
		{
			name: "blank script",
			tool: NameExecuteScript,
			args: map[string]any{"script": "   \n\t  "},
			want: "Script cannot be empty",
		},
		{
			name: "script wrong type",
			tool: NameExecuteScript,
			args: map[string]any{"script": float64(7)},
			want: "Script must be a string",
		},
		{
			name: "timeout below range",
			tool: NameExecuteScript,
			args: map[string]any{"script": "ls", "timeout": float64(0)},
			want: "Timeout must be an integer between 1 and 300 seconds",
		},
		{
			name: "timeout above range",
			tool: NameExecuteScript,
			args: map[string]any{"script": "ls", "timeout": float64(301)},
			want: "Timeout must be an integer between 1 and 300 seconds",
		},
		{
			name: "timeout fractional",
			tool: NameExecuteScript,
			args: map[string]any{"script": "ls", "timeout": 1.5},
			want: "Timeout must be an integer between 1 and 300 seconds",
		},
		{
			name: "timeout wrong type",
			tool: NameExecuteScript,
			args: map[string]any{"script": "ls", "timeout": "30"},
			want: "Timeout must be an integer between 1 and 300 seconds",
		},
		{
			name: "clipboard takes no args",
			tool: NameGetClipboard,
			args: map[string]any{},
			want: "",
		},
		{
			name: "capture defaults valid",
			tool: NameCaptureResponse,
			args: map[string]any{},
			want: "",
		},
		{
			name: "capture save_path wrong type",
			tool: NameCaptureResponse,
			args: map[string]any{"save_path": float64(1)},
			want: "save_path must be a string",
		},
		{
			name: "capture exclude_titlebar wrong type",
			tool: NameCaptureResponse,
			args: map[string]any{"exclude_titlebar": "yes"},
			want: "exclude_titlebar must be a boolean",
		},
		{
			name: "unknown tool",
			tool: "format_disk",
			args: map[string]any{},
			want: "Unknown tool: format_disk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Validate(tt.tool, tt.args); got != tt.want {
				t.Fatalf("Validate(%s) = %q, want %q", tt.tool, got, tt.want)
			}
		})
	}
}

func TestValidateDoesNotMutateArguments(t *testing.T) {
	r := NewRegistry(30)
	args := map[string]any{"script": "  ls  ", "timeout": float64(10)}
	r.Validate(NameExecuteScript, args)
	if args["script"] != "  ls  " {
		t.Fatalf("script mutated to %q", args["script"])
	}
	if args["timeout"] != float64(10) {
		t.Fatalf("timeout mutated to %v", args["timeout"])
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{
		"n":    float64(5),
		"frac": 5.5,
		"s":    "hello",
		"b":    true,
	}

	if got := IntArg(args, "n", 1); got != 5 {
		t.Fatalf("IntArg(n) = %d, want 5", got)
	}
	if got := IntArg(args, "frac", 1); got != 1 {
		t.Fatalf("IntArg(frac) = %d, want fallback 1", got)
	}
	if got := IntArg(args, "missing", 7); got != 7 {
		t.Fatalf("IntArg(missing) = %d, want fallback 7", got)
	}
	if got := StringArg(args, "s", ""); got != "hello" {
		t.Fatalf("StringArg(s) = %q, want hello", got)
	}
	if got := StringArg(args, "n", "dflt"); got != "dflt" {
		t.Fatalf("StringArg(n) = %q, want fallback", got)
	}
	if got := BoolArg(args, "b", false); !got {
		t.Fatal("BoolArg(b) = false, want true")
	}
	if got := BoolArg(args, "missing", true); !got {
		t.Fatal("BoolArg(missing) = false, want fallback true")
	}
}
