package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerloom/ledgerloom/internal/llm"
)

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "Show configured AI providers and their availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if !a.factory.Configured() {
				fmt.Println("No AI providers configured. Categorization will use learned merchants and rules only.")
				fmt.Println("Set LEDGERLOOM_OPENAI_API_KEY, LEDGERLOOM_ANTHROPIC_API_KEY or local.base_url to enable AI tiers.")
				return nil
			}

			ctx := cmd.Context()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INTENT\tPROVIDER")
			for _, intent := range []llm.ProviderIntent{
				llm.IntentFastCheap,
				llm.IntentBestQuality,
				llm.IntentStructuredOutput,
				llm.IntentCheapest,
				llm.IntentLocalOnly,
			} {
				provider, err := a.factory.ProviderFor(ctx, intent)
				if err != nil {
					fmt.Fprintf(w, "%s\t(unavailable)\n", intent)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\n", intent, provider.Name())
			}
			return w.Flush()
		},
	}
}
