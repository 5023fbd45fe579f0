package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Kind selects the prompt used for a question.
type Kind int

const (
	AskText Kind = iota
	AskPassword
	AskMultiline
	AskConfirm
	AskSelect
	AskMultiSelect
)

// Question is one prompt derived from a field. Text is the default for the
// text kinds, Yes for AskConfirm, and Chosen holds preselected indices into
// Options for the select kinds.
type Question struct {
	Kind    Kind
	Message string
	Help    string
	Text    string
	Yes     bool
	Options []string
	Chosen  []int
}

// Answer carries the reply in the slot matching the question kind.
type Answer struct {
	Text   string
	Yes    bool
	Chosen []int
}

// Driver asks questions. The terminal implementation is SurveyDriver; tests
// and other front ends supply their own.
type Driver interface {
	Ask(ctx context.Context, q Question) (Answer, error)
}

// SurveyDriver prompts on the controlling terminal.
type SurveyDriver struct {
	opts []survey.AskOpt
}

// NewSurveyDriver returns a terminal driver. AskOpts (for example
// survey.WithStdio) apply to every prompt.
func NewSurveyDriver(opts ...survey.AskOpt) *SurveyDriver {
	return &SurveyDriver{opts: opts}
}

func (d *SurveyDriver) Ask(ctx context.Context, q Question) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}

	var (
		answer Answer
		err    error
	)
	switch q.Kind {
	case AskConfirm:
		err = survey.AskOne(&survey.Confirm{Message: q.Message, Help: q.Help, Default: q.Yes}, &answer.Yes, d.opts...)
	case AskSelect:
		prompt := &survey.Select{Message: q.Message, Help: q.Help, Options: q.Options}
		if len(q.Chosen) > 0 {
			prompt.Default = q.Chosen[0]
		}
		var picked int
		err = survey.AskOne(prompt, &picked, d.opts...)
		answer.Chosen = []int{picked}
	case AskMultiSelect:
		prompt := &survey.MultiSelect{Message: q.Message, Help: q.Help, Options: q.Options}
		if len(q.Chosen) > 0 {
			prompt.Default = q.Chosen
		}
		err = survey.AskOne(prompt, &answer.Chosen, d.opts...)
	case AskPassword:
		err = survey.AskOne(&survey.Password{Message: q.Message, Help: q.Help}, &answer.Text, d.opts...)
	case AskMultiline:
		err = survey.AskOne(&survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Text}, &answer.Text, d.opts...)
	default:
		err = survey.AskOne(&survey.Input{Message: q.Message, Help: q.Help, Default: q.Text}, &answer.Text, d.opts...)
	}
	if errors.Is(err, terminal.InterruptErr) {
		return Answer{}, ErrAborted
	}
	if err != nil {
		return Answer{}, err
	}
	return answer, nil
}

var _ Driver = (*SurveyDriver)(nil)
