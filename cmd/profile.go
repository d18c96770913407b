package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	dash "github.com/abhisek/luminar/internal/dashboard"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your latest test and career suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		loop, stop := startLoop()
		defer stop()

		ctx := cmd.Context()
		events := make(chan dash.Event, 4)
		err = call(ctx, loop, func() {
			agg := dash.New(ctx, dash.Deps{
				Executor: loop,
				Source:   rt.client,
				Tokens:   rt.tokens,
				Logger:   rt.log,
				Notify:   func(e dash.Event) { events <- e },
			})
			agg.Load()
		})
		if err != nil {
			return err
		}

		snap, err := awaitSnapshot(ctx, events)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(snap.Profile)
		}
		printSnapshot(out, snap)
		return nil
	},
}

func init() {
	profileCmd.Flags().Bool("json", false, "Print the raw profile as JSON")
}

func awaitSnapshot(ctx context.Context, events <-chan dash.Event) (*dash.Snapshot, error) {
	for {
		select {
		case e := <-events:
			switch e.Kind {
			case dash.Ready:
				return e.Snapshot, nil
			case dash.Error:
				return nil, fmt.Errorf("%s", e.Message)
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func printSnapshot(w io.Writer, s *dash.Snapshot) {
	fmt.Fprintln(w, s.Greeting)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Seu Teste de Inteligência")
	fmt.Fprintf(w, "Realizado em: %s\n", s.TestDate)
	fmt.Fprintf(w, "Sua inteligência principal é: %s (%d%%)\n", s.Top.Label(), s.TopScore)
	fmt.Fprintln(w)
	for _, e := range s.Ranked {
		fmt.Fprintf(w, "  %-22s %3d%%  %s\n", e.Dimension.Label(), e.Score, bar(e.Score, 30))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sugestões de Carreira para Você")
	if len(s.Suggestions) == 0 {
		fmt.Fprintln(w, "  Nenhuma sugestão disponível.")
	}
	for _, a := range s.Suggestions {
		fmt.Fprintf(w, "  • %s", a.Area)
		if a.Probability != "" {
			fmt.Fprintf(w, " (%s)", a.Probability)
		}
		fmt.Fprintln(w)
		if len(a.SampleProfessions) > 0 {
			fmt.Fprintf(w, "    Ex: %s\n", strings.Join(a.SampleProfessions, ", "))
		}
	}
}

// bar draws score (0-100) as a fixed-width text bar.
func bar(score, width int) string {
	n := score * width / 100
	n = max(0, min(n, width))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}
