package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/requests"
)

// cliWidth is the wrap width for one-shot output.
const cliWidth = 100

// withSession runs fn against a fresh CLI session.
func withSession(cmd *cobra.Command, fn func(d *deps) error) error {
	d, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()
	d.echoNotices(cmd.ErrOrStderr())
	d.startCLISession()
	return fn(d)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study plan",
	Example: `  studygenie plan --subject "Operating Systems:Hard:2026-12-01" --subject "DBMS:Medium" --hours 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, _ := cmd.Flags().GetStringArray("subject")
		hours, _ := cmd.Flags().GetString("hours")

		form := requests.PlanForm{DailyHours: hours}
		for _, s := range specs {
			form.Subjects = append(form.Subjects, parseSubject(s))
		}

		return withSession(cmd, func(d *deps) error {
			rec, err := d.ctrl.GeneratePlan(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Plan(rec.View, cliWidth))
			return nil
		})
	},
}

// parseSubject reads "name[:difficulty[:exam date]]".
func parseSubject(s string) requests.SubjectInput {
	parts := strings.SplitN(s, ":", 3)
	in := requests.SubjectInput{Name: parts[0]}
	if len(parts) > 1 {
		in.Difficulty = parts[1]
	}
	if len(parts) > 2 {
		in.ExamDate = parts[2]
	}
	return in
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the AI tutor a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		return withSession(cmd, func(d *deps) error {
			answer, err := d.ctrl.Ask(cmd.Context(), question)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Answer(answer, cliWidth))
			return nil
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Analyze today's study progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		form := requests.ProgressForm{}
		form.CompletedTasks, _ = flags.GetString("completed")
		form.TotalTasks, _ = flags.GetString("total")
		form.StudyHours, _ = flags.GetString("hours")
		form.FocusLevel, _ = flags.GetString("focus")

		return withSession(cmd, func(d *deps) error {
			rec, err := d.ctrl.AnalyzeProgress(cmd.Context(), form)
			if err != nil {
				return err
			}
			out := render.Analysis(rec.Snapshot, rec.Analysis, d.ctrl.Progress().Achievements(), cliWidth)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Upload notes for processing",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		form := requests.NotesForm{}
		form.Title, _ = flags.GetString("title")
		form.Subject, _ = flags.GetString("subject")
		form.FilePath, _ = flags.GetString("file")
		form.Text, _ = flags.GetString("text")

		return withSession(cmd, func(d *deps) error {
			rec, err := d.ctrl.UploadNotes(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Notes(rec.Result, cliWidth))
			return nil
		})
	},
}

var questionsCmd = newGenerateCmd("questions", "Generate practice questions", normalize.KindQuestions)

var mcqsCmd = newGenerateCmd("mcqs", "Generate multiple choice questions", normalize.KindMCQs)

func newGenerateCmd(use, short string, kind normalize.QuestionKind) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			form := requests.QuestionsForm{}
			form.FilePath, _ = flags.GetString("file")
			form.Text, _ = flags.GetString("text")
			form.Count, _ = flags.GetString("count")
			reveal, _ := flags.GetBool("answers")
			if kind == normalize.KindQuestions {
				form.Type, _ = flags.GetString("type")
			}

			return withSession(cmd, func(d *deps) error {
				generate := d.ctrl.GenerateQuestions
				if kind == normalize.KindMCQs {
					generate = d.ctrl.GenerateMCQs
				}
				list, err := generate(cmd.Context(), form)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.Questions(list, reveal, cliWidth))
				return nil
			})
		},
	}
	c.Flags().StringP("file", "f", "", "Read content from a file (PDFs are sent base64 encoded)")
	c.Flags().StringP("text", "t", "", "Content to generate from")
	c.Flags().StringP("count", "n", "", "Number of questions (1-20, default 5)")
	c.Flags().Bool("answers", false, "Show answers and explanations")
	if kind == normalize.KindQuestions {
		c.Flags().String("type", "", "Question type (default mixed)")
	}
	return c
}

func init() {
	planCmd.Flags().StringArrayP("subject", "s", nil, `Subject as "name[:difficulty[:YYYY-MM-DD]]" (repeatable)`)
	planCmd.Flags().String("hours", "", "Daily study hours")

	progressCmd.Flags().String("completed", "", "Tasks completed today")
	progressCmd.Flags().String("total", "", "Total tasks planned")
	progressCmd.Flags().String("hours", "", "Hours studied")
	progressCmd.Flags().String("focus", "", "Focus level from 1 to 10")

	notesCmd.Flags().String("title", "", "Notes title (defaults to the file name)")
	notesCmd.Flags().String("subject", "", "Subject (default General)")
	notesCmd.Flags().StringP("file", "f", "", "Read notes from a file")
	notesCmd.Flags().StringP("text", "t", "", "Notes text")
}
