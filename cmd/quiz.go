package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/luminar/internal/api"
	qz "github.com/abhisek/luminar/internal/quiz"
	"github.com/abhisek/luminar/internal/results"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Submit a full set of answers and print the results",
	Long: "Submit one answer (1-5) per question, in order. Answers come from " +
		"--answers or, when that is empty, from stdin separated by commas or whitespace.",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("answers")
		if raw == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			raw = string(data)
		}
		answers, err := parseAnswers(raw)
		if err != nil {
			return err
		}

		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		questions, err := rt.questions()
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		if len(answers) != questions.Len() {
			return fmt.Errorf("expected %d answers, got %d", questions.Len(), len(answers))
		}

		res, err := runQuiz(cmd.Context(), rt, questions, answers)
		if err != nil {
			return err
		}
		printResults(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	quizCmd.Flags().String("answers", "", "Comma-separated answers, e.g. 5,4,3,...")
}

// parseAnswers splits on commas and whitespace. Range checks are left to
// the quiz engine.
func parseAnswers(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	answers := make([]int, 0, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, f)
		}
		answers = append(answers, n)
	}
	return answers, nil
}

func runQuiz(ctx context.Context, rt *runtime, questions qz.QuestionSet, answers []int) (*api.TestResult, error) {
	loop, stop := startLoop()
	defer stop()

	events := make(chan qz.Event, len(answers)+4)
	var runErr error
	err := call(ctx, loop, func() {
		engine, err := qz.New(ctx, questions, qz.Deps{
			Executor:  loop,
			Submitter: rt.client,
			Logger:    rt.log,
			Notify:    func(e qz.Event) { events <- e },
		})
		if err != nil {
			runErr = err
			return
		}
		engine.Start()
		for i, a := range answers {
			if err := engine.Answer(a); err != nil {
				runErr = fmt.Errorf("answer %d: %w", i+1, err)
				return
			}
		}
		runErr = engine.Submit()
	})
	if err != nil {
		return nil, err
	}
	if runErr != nil {
		return nil, runErr
	}

	for {
		select {
		case e := <-events:
			switch e.Kind {
			case qz.Submitted:
				return e.Result, nil
			case qz.SubmissionFailed:
				return nil, fmt.Errorf("%s: %w", e.Message, e.Err)
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func printResults(w io.Writer, r *api.TestResult) {
	fmt.Fprintln(w, "Parabéns! Seus resultados chegaram.")
	fmt.Fprintln(w)
	for _, c := range results.Aggregate(r) {
		fmt.Fprintf(w, "%s  %s\n", bar(c.Score, 30), c.Title())
		if c.Description != "" {
			fmt.Fprintf(w, "    %s\n", c.Description)
		}
	}
}
