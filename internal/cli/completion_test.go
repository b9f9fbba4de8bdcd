package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func TestCompleteStages(t *testing.T) {
	tests := []struct {
		toComplete string
		want       []string
	}{
		{"", []string{"pacote", "crate", "box"}},
		{"pacote,", []string{"pacote,crate", "pacote,box"}},
		{"box,crate,", []string{"box,crate,pacote"}},
	}
	for _, tt := range tests {
		got, directive := completeStages(nil, nil, tt.toComplete)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("completeStages(%q) mismatch (-want +got):\n%s", tt.toComplete, diff)
		}
		if directive&cobra.ShellCompDirectiveNoSpace == 0 {
			t.Errorf("completeStages(%q) should not add a space", tt.toComplete)
		}
	}
}

func TestRequestCompletion(t *testing.T) {
	got, directive := requestCompletion(nil, nil, "")
	if !cmp.Equal(got, []string{"json"}) || directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("requestCompletion() = %v, %v; want json filter", got, directive)
	}
	if _, directive := requestCompletion(nil, []string{"orders.json"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v, want NoFileComp", directive)
	}
}

func TestRegisterCompletions(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"pack", "partition", "families"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("Find(%s) error: %v", name, err)
		}
		if cmd.ValidArgsFunction == nil {
			t.Errorf("%s has no argument completion", name)
		}
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"pack", "--stages", "pacote,"}, "pacote,crate"},
		{[]string{"families", "--format", ""}, "png"},
	}
	for _, tt := range tests {
		root := New(io.Discard, LogInfo).RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, tt.args...))
		if err := root.Execute(); err != nil {
			t.Fatalf("complete %v: %v", tt.args, err)
		}
		if !strings.Contains(out.String(), tt.want) {
			t.Errorf("complete %v = %q, want it to offer %q", tt.args, out.String(), tt.want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out.String(), "palletizer") {
		t.Error("bash script should mention the program name")
	}
}
