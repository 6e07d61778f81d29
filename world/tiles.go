package world

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"xpquest/ledger"
	"xpquest/prompts"
)

// Env is what tile behaviours may touch.
type Env struct {
	Ledger    *ledger.Ledger
	Rewards   Rewards
	Gate      int
	Questions []Question
	Rand      *rand.Rand
	Out       io.Writer
	// ReadAnswer prompts for and returns one line of player input.
	ReadAnswer func(prompt string) (string, error)
}

type behaviour struct {
	enter    func(env *Env)
	interact func(env *Env, cmd string) (bool, error)
}

var behaviours = map[Kind]behaviour{
	Plain:   {},
	Oracle:  {interact: consultOracle},
	Library: {enter: approachLibrary, interact: studyAtLibrary},
}

// Enter runs the tile's arrival hook, if any.
func Enter(env *Env, t Tile) {
	if b := behaviours[t.Kind]; b.enter != nil {
		b.enter(env)
	}
}

// Interact offers cmd to the tile and reports whether it was handled.
func Interact(env *Env, t Tile, cmd string) (bool, error) {
	b := behaviours[t.Kind]
	if b.interact == nil {
		return false, nil
	}
	return b.interact(env, cmd)
}

func consultOracle(env *Env, cmd string) (bool, error) {
	if cmd != "ask" {
		return false, nil
	}
	if len(env.Questions) == 0 {
		return false, fmt.Errorf("oracle has no questions")
	}
	q := env.Questions[0]
	if env.Rand != nil {
		q = env.Questions[env.Rand.Intn(len(env.Questions))]
	}
	fmt.Fprintf(env.Out, prompts.OracleQuestion, q.Prompt)
	answer, err := env.ReadAnswer(prompts.OracleAnswerPrompt)
	if err != nil {
		return true, fmt.Errorf("read oracle answer: %w", err)
	}

	reward := env.Rewards.OracleWrong
	if strings.ToLower(strings.TrimSpace(answer)) == q.Answer {
		fmt.Fprint(env.Out, prompts.OracleCorrect)
		reward = env.Rewards.OracleCorrect
	} else {
		fmt.Fprintf(env.Out, prompts.OracleWrong, q.Answer)
	}
	return true, award(env, reward.Draw(env.Rand))
}

func approachLibrary(env *Env) {
	if !env.Ledger.GateCheck(env.Gate) {
		fmt.Fprintf(env.Out, prompts.LibraryLocked, env.Gate)
	}
}

func studyAtLibrary(env *Env, cmd string) (bool, error) {
	if !env.Ledger.GateCheck(env.Gate) || cmd != "study" {
		return false, nil
	}
	fmt.Fprint(env.Out, prompts.LibraryStudy)
	return true, award(env, env.Rewards.Study.Draw(env.Rand))
}

func award(env *Env, amount int) error {
	before := env.Ledger.TotalXP()
	if _, err := env.Ledger.ApplyGain(amount); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, prompts.XPReceived, env.Ledger.TotalXP()-before)
	return nil
}
