package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/az-ai-labs/ko-lang-nlp/morph"
	"github.com/az-ai-labs/ko-lang-nlp/tokenizer"
)

func newStripCmd(a *app) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "strip word...",
		Short: "Print the dictionary forms of words",
		Example: `  kovocab strip 갑니다 "무서운 것"
  kovocab strip --trace 학교에서도`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.strip(cmd.OutOrStdout(), args, trace)
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print every state transition")
	return cmd
}

// strip prints one line per token: the token, a tab, and its lemmas.
func (a *app) strip(w io.Writer, args []string, trace bool) error {
	s := a.stripper()
	for _, arg := range args {
		prepared, err := tokenizer.Prepare(arg)
		if err != nil {
			a.log.Warn("skip argument", "arg", arg, "err", err)
			continue
		}
		for _, tok := range tokenizer.Words(prepared) {
			fmt.Fprintf(w, "%s\t%s\n", tok, strings.Join(s.Strip(tok).Strings(), " "))
			if !trace {
				continue
			}
			for _, st := range s.Trace(tok) {
				fmt.Fprintf(w, "  %s\n", formatStep(st))
			}
		}
	}
	return nil
}

func formatStep(st morph.Step) string {
	if st.Terminal {
		out := fmt.Sprintf("[%d] %s stop %q", st.Part, st.From, st.Residual)
		if st.Lemma != "" {
			out += " => " + st.Lemma
		}
		for _, r := range st.Repairs {
			out += " +" + r.String()
		}
		return out
	}
	fused := ""
	if st.Fused {
		fused = " fused"
	}
	return fmt.Sprintf("[%d] %s -%s(%s%s)-> %s %q", st.Part, st.From, st.Particle, st.Tag, fused, st.To, st.Residual)
}
