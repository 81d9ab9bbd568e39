package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/config"
	"github.com/kpauljoseph/printcards/internal/generator"
	"github.com/kpauljoseph/printcards/internal/layout"
)

// wizardStep asks for one setting.
type wizardStep struct {
	field string
	label string
	get   func(*config.Config) string
	set   func(*config.Config, string) error
}

func stringStep(field, label string, ptr func(*config.Config) *string) wizardStep {
	return wizardStep{
		field: field,
		label: label,
		get:   func(c *config.Config) string { return *ptr(c) },
		set: func(c *config.Config, v string) error {
			*ptr(c) = v
			return nil
		},
	}
}

func floatStep(field, label string, ptr func(*config.Config) *float64) wizardStep {
	return wizardStep{
		field: field,
		label: label,
		get:   func(c *config.Config) string { return strconv.FormatFloat(*ptr(c), 'g', -1, 64) },
		set: func(c *config.Config, v string) error {
			f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", v)
			}
			*ptr(c) = f
			return nil
		},
	}
}

func intStep(field, label string, ptr func(*config.Config) *int) wizardStep {
	return wizardStep{
		field: field,
		label: label,
		get:   func(c *config.Config) string { return strconv.Itoa(*ptr(c)) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%q is not a whole number", v)
			}
			*ptr(c) = n
			return nil
		},
	}
}

func wizardSteps() []wizardStep {
	return []wizardStep{
		stringStep("input", "CSV deck file", func(c *config.Config) *string { return &c.Input }),
		stringStep("delimiter", "Field separator", func(c *config.Config) *string { return &c.Delimiter }),
		stringStep("paper", "Paper format ("+strings.Join(layout.PaperNames(), ", ")+")", func(c *config.Config) *string { return &c.Paper }),
		stringStep("orientation", "Orientation (auto, portrait, landscape)", func(c *config.Config) *string { return &c.Orientation }),
		stringStep("unit", "Unit (cm, mm, in, pt)", func(c *config.Config) *string { return &c.Unit }),
		floatStep("card.width", "Card width", func(c *config.Config) *float64 { return &c.Card.Width }),
		floatStep("card.height", "Card height", func(c *config.Config) *float64 { return &c.Card.Height }),
		floatStep("spacing.margin_x", "Left and right margin", func(c *config.Config) *float64 { return &c.Spacing.MarginX }),
		floatStep("spacing.margin_y", "Top and bottom margin", func(c *config.Config) *float64 { return &c.Spacing.MarginY }),
		floatStep("spacing.gap", "Gap between cards", func(c *config.Config) *float64 { return &c.Spacing.Gap }),
		intStep("fonts.side_a", "Side A font size (pt)", func(c *config.Config) *int { return &c.Fonts.SideA }),
		intStep("fonts.side_b", "Side B font size (pt)", func(c *config.Config) *int { return &c.Fonts.SideB }),
		stringStep("output", "Output PDF", func(c *config.Config) *string { return &c.Output }),
		{
			field: "merge",
			label: "Merge front and back into one file (y/n)",
			get: func(c *config.Config) string {
				if c.MergeEnabled() {
					return "y"
				}
				return "n"
			},
			set: func(c *config.Config, v string) error {
				switch strings.ToLower(v) {
				case "y", "yes":
					c.Merge = config.Bool(true)
				case "n", "no":
					c.Merge = config.Bool(false)
				default:
					return fmt.Errorf("answer y or n")
				}
				return nil
			},
		},
	}
}

type wizardPhase int

const (
	phaseInput wizardPhase = iota
	phaseConfirm
)

// PlanFunc loads the deck named in cfg and describes the run.
type PlanFunc func(cfg *config.Config) (*generator.Plan, error)

// WizardModel is the bubbletea model for the guided setup. Settings are
// collected one at a time and validated together at the end.
type WizardModel struct {
	Config    *config.Config
	Confirmed bool
	Aborted   bool

	steps   []wizardStep
	step    int
	input   []rune
	phase   wizardPhase
	errMsg  string
	errs    layout.ValidationErrors
	plan    *generator.Plan
	planFor PlanFunc
}

// NewWizardModel starts the wizard from cfg, which supplies the defaults.
func NewWizardModel(cfg *config.Config, planFor PlanFunc) WizardModel {
	return WizardModel{
		Config:  cfg,
		steps:   wizardSteps(),
		planFor: planFor,
	}
}

func (m WizardModel) Init() tea.Cmd {
	return nil
}

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		m.Aborted = true
		return m, tea.Quit
	}

	if m.phase == phaseConfirm {
		return m.updateConfirm(key)
	}
	return m.updateInput(key)
}

func (m WizardModel) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyEsc:
		if m.step == 0 {
			m.Aborted = true
			return m, tea.Quit
		}
		m.step--
		m.input = nil
		m.errMsg = ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

// submit stores the typed value, or keeps the default when nothing was
// typed, and moves on. After the last step the whole config is validated.
func (m WizardModel) submit() (tea.Model, tea.Cmd) {
	step := m.steps[m.step]
	if value := strings.TrimSpace(string(m.input)); value != "" {
		if err := step.set(m.Config, value); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
	}
	m.input = nil
	m.errMsg = ""

	if m.step < len(m.steps)-1 {
		m.step++
		return m, nil
	}
	return m.finish()
}

func (m WizardModel) finish() (tea.Model, tea.Cmd) {
	m.errs = nil
	if err := m.Config.Validate(); err != nil {
		var verrs layout.ValidationErrors
		if errors.As(err, &verrs) {
			m.errs = verrs
			m.step = m.stepFor(verrs[0].Field)
		} else {
			m.errMsg = err.Error()
			m.step = 0
		}
		return m, nil
	}

	plan, err := m.planFor(m.Config)
	if err != nil {
		m.errMsg = err.Error()
		m.step = 0
		return m, nil
	}

	m.plan = plan
	m.phase = phaseConfirm
	return m, nil
}

// stepFor returns the step that edits field, or the first step.
func (m WizardModel) stepFor(field string) int {
	for i, s := range m.steps {
		if s.field == field {
			return i
		}
	}
	return 0
}

func (m WizardModel) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y", "enter":
		m.Confirmed = true
		return m, tea.Quit
	case "n", "q", "esc":
		m.Aborted = true
		return m, tea.Quit
	case "b":
		m.phase = phaseInput
		m.step = 0
	}
	return m, nil
}

func (m WizardModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("printcards setup"))
	b.WriteString("\n")

	if m.phase == phaseConfirm {
		b.WriteString(renderPlan(m.plan))
		b.WriteString("\n")
		b.WriteString(renderGrid(m.plan.Layout))
		b.WriteString("\n\n")
		b.WriteString(styleDim.Render("y generate  b edit  n quit"))
		return b.String()
	}

	step := m.steps[m.step]
	b.WriteString(styleDim.Render(fmt.Sprintf("step %d/%d  ⏎ next  esc back  ctrl+c quit", m.step+1, len(m.steps))))
	b.WriteString("\n\n")
	b.WriteString(step.label)
	if def := step.get(m.Config); def != "" {
		b.WriteString(" " + styleDim.Render("["+def+"]"))
	}
	b.WriteString("\n")
	b.WriteString(styleIconInfo.Render(iconInfo) + " " + string(m.input) + "█")
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.errMsg + "\n")
	}
	if len(m.errs) > 0 {
		b.WriteString("\n" + renderFieldErrors(m.errs) + "\n")
	}
	return b.String()
}

func newWizardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Set up and print a deck step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			planFor := func(cfg *config.Config) (*generator.Plan, error) {
				records, err := generator.FromConfig(cfg, a.log).Load(ctx, cfg)
				if err != nil {
					return nil, err
				}
				return generator.NewPlan(cfg, len(records))
			}

			program := tea.NewProgram(
				NewWizardModel(cfg, planFor),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := program.Run()
			if err != nil {
				return err
			}

			m := final.(WizardModel)
			if !m.Confirmed {
				printInfo(cmd.OutOrStdout(), "Cancelled")
				return nil
			}

			bar := newProgressBar(cmd.ErrOrStderr())
			report, err := generator.FromConfig(m.Config, a.log, generator.WithProgress(bar.update)).Run(ctx, m.Config)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
