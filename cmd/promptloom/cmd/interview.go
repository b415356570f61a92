package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptloom/src/database"
	"promptloom/src/interview"
	"promptloom/src/session"
)

var (
	interviewResume string
	interviewSaveAs string
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive prompt interview",
	Long: `Run the interview as a line-oriented session. Type "help" at the
prompt for the list of commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.log.Sync()

		var opts []interview.Option
		opts = append(opts, interview.WithLogger(env.log))

		store, err := database.Open(env.settings.Store.Path, database.WithLogger(env.log))
		if err != nil {
			env.log.Warn("session store unavailable, saving disabled", zap.Error(err))
			store = nil
		} else {
			defer store.Close()
		}

		name := interviewSaveAs
		if interviewResume != "" {
			if store == nil {
				return fmt.Errorf("cannot resume %s without a session store", interviewResume)
			}
			state, err := store.Load(cmd.Context(), interviewResume)
			if err != nil {
				return err
			}
			opts = append(opts, interview.WithState(state))
			if name == "" {
				name = interviewResume
			}
		}

		r := &repl{e: interview.New(env.graph, opts...), out: cmd.OutOrStdout(), name: name}
		if store != nil {
			r.save = func(ctx context.Context, name string) error {
				return store.Save(ctx, name, r.e.Snapshot(), r.e.PreviewPrompt())
			}
		}
		return r.run(cmd.Context(), cmd.InOrStdin())
	},
}

func init() {
	interviewCmd.Flags().StringVar(&interviewResume, "resume", "", "resume a saved session")
	interviewCmd.Flags().StringVar(&interviewSaveAs, "name", "", "name used by the save command")
	rootCmd.AddCommand(interviewCmd)
}

const replHelp = `commands:
  <n>              select answer n
  r <n>            select refinement answer n
  c                commit the current selection and weights
  n | s | b        next, skip, back
  j <node>         jump to a node
  w <id> <value>   enable and set a weight slider
  off <id>         disable a weight slider
  i <value>        enable and set the intensity slider
  x <text>         custom extension for the current answer
  + <text>         add a prompt element; - <text> adds a negative one
  rm <selection>   remove a committed selection
  sum | p          summary, preview
  suggest | reset
  save [name]      save the session
  q                quit`

type repl struct {
	e    *interview.Engine
	out  io.Writer
	name string
	save func(ctx context.Context, name string) error
}

func (r *repl) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	r.render()
	scanner := bufio.NewScanner(in)
	for {
		r.printf("> ")
		if !scanner.Scan() {
			r.printf("\n")
			return scanner.Err()
		}
		quit, err := r.exec(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			r.printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (r *repl) render() {
	node, ok := r.e.CurrentNode()
	if !ok {
		r.printf("(no current node)\n")
		return
	}
	r.printf("\n[%s] %s\n", node.ID, node.Question)
	for i, a := range node.Answers {
		r.printf("  %d. %s\n", i+1, a.Label)
	}
	if ref, ok := r.e.CurrentRefinement(); ok && ref.ID != node.ID {
		r.printf("  refine: %s\n", ref.Question)
		for i, a := range ref.Answers {
			r.printf("    r %d. %s\n", i+1, a.Label)
		}
	}
	for _, w := range r.e.ActiveWeights() {
		state := "off"
		if w.Enabled {
			state = "on"
		}
		r.printf("  weight %s (%s) = %.2f [%s]\n", w.ID, w.Label, w.Value, state)
	}
	if r.e.ShowIntensitySlider() {
		r.printf("  intensity = %.2f\n", r.e.CurrentIntensity())
	}
	if r.e.IsFinished() {
		r.printf("  (end of branch)\n")
	}
}

// answerID resolves a 1-based index on the current node or refinement
func (r *repl) answerID(arg string, refinement bool) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return "", fmt.Errorf("expected an answer number, got %q", arg)
	}
	node, ok := r.e.CurrentNode()
	if !ok {
		return "", fmt.Errorf("no current node")
	}
	answers := node.Answers
	if refinement {
		if ref, ok := r.e.CurrentRefinement(); ok {
			answers = ref.Answers
		}
	}
	if n > len(answers) {
		return "", fmt.Errorf("no answer %d", n)
	}
	return answers[n-1].ID, nil
}

func parseFloat(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", arg)
	}
	return v, nil
}

// events translates one input line into interview events
func (r *repl) events(cmd, arg string) ([]interview.Event, error) {
	switch cmd {
	case "r":
		id, err := r.answerID(arg, true)
		if err != nil {
			return nil, err
		}
		return []interview.Event{{Type: interview.EventSelectRefinement, AnswerID: id}}, nil
	case "c":
		return []interview.Event{{Type: interview.EventCommit}}, nil
	case "n":
		return []interview.Event{{Type: interview.EventNext}}, nil
	case "s":
		return []interview.Event{{Type: interview.EventSkip}}, nil
	case "b":
		return []interview.Event{{Type: interview.EventPrevious}}, nil
	case "j":
		return []interview.Event{{Type: interview.EventJump, NodeID: arg}}, nil
	case "w":
		fields := strings.Fields(arg)
		if len(fields) != 2 {
			return nil, fmt.Errorf("usage: w <id> <value>")
		}
		v, err := parseFloat(fields[1])
		if err != nil {
			return nil, err
		}
		return []interview.Event{
			{Type: interview.EventSetSliderEnabled, WeightID: fields[0], Enabled: true},
			{Type: interview.EventSetWeight, WeightID: fields[0], Value: v},
		}, nil
	case "off":
		return []interview.Event{{Type: interview.EventSetSliderEnabled, WeightID: arg}}, nil
	case "i":
		v, err := parseFloat(arg)
		if err != nil {
			return nil, err
		}
		update := interview.EventSetIntensity
		if r.e.HasCommittedSelection() && !r.e.HasTempSelection() {
			update = interview.EventUpdateIntensity
		}
		return []interview.Event{
			{Type: interview.EventSetSliderEnabled, WeightID: session.IntensityID, Enabled: true},
			{Type: update, Value: v},
		}, nil
	case "x":
		return []interview.Event{{Type: interview.EventSetCustomExtension, Text: arg}}, nil
	case "+", "-":
		side := session.SidePrompt
		if cmd == "-" {
			side = session.SideNegative
		}
		index := len(r.e.Snapshot().CustomElements)
		return []interview.Event{
			{Type: interview.EventAddCustomElement, Text: arg},
			{Type: interview.EventToggleCustomElement, Index: index},
			{Type: interview.EventSetCustomSide, Index: index, Side: side},
		}, nil
	case "rm":
		return []interview.Event{{Type: interview.EventRemoveSelection, SelectionID: arg}}, nil
	case "suggest":
		return []interview.Event{{Type: interview.EventSuggest}}, nil
	case "reset":
		return []interview.Event{{Type: interview.EventReset}}, nil
	}

	if _, err := strconv.Atoi(cmd); err != nil {
		return nil, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	id, err := r.answerID(cmd, false)
	if err != nil {
		return nil, err
	}
	return []interview.Event{{Type: interview.EventSelectAnswer, AnswerID: id}}, nil
}

func (r *repl) exec(ctx context.Context, line string) (bool, error) {
	if line == "" {
		return false, nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "help", "?":
		r.printf("%s\n", replHelp)
		return false, nil
	case "p":
		res := r.e.PreviewPrompt()
		r.printf("prompt:   %s\nnegative: %s\n", res.Prompt, res.NegativePrompt)
		return false, nil
	case "sum":
		items := r.e.SelectionSummary()
		if len(items) == 0 {
			r.printf("no selections yet\n")
		}
		for _, item := range items {
			r.printf("  %s  %s -> %s\n", item.ID, item.Question, item.AnswerLabel)
		}
		return false, nil
	case "save":
		return false, r.saveAs(ctx, arg)
	}

	evs, err := r.events(cmd, arg)
	if err != nil {
		return false, err
	}
	for _, ev := range evs {
		ok, err := r.e.Apply(ev)
		if err != nil {
			return false, err
		}
		if !ok {
			r.printf("nothing to do\n")
			return false, nil
		}
	}
	r.render()
	return false, nil
}

func (r *repl) saveAs(ctx context.Context, name string) error {
	if r.save == nil {
		return fmt.Errorf("no session store configured")
	}
	if name == "" {
		name = r.name
	}
	if name == "" {
		return fmt.Errorf("usage: save <name>")
	}
	if err := r.save(ctx, name); err != nil {
		return err
	}
	r.name = name
	r.printf("saved %s\n", name)
	return nil
}
