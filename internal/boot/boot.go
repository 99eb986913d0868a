// Package boot assembles an engine and its encounter list from the files the
// binaries are pointed at. Empty paths fall back to the built-in content.
package boot

import (
	"flag"
	"fmt"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/config"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/quiz"
)

// Paths names the optional data files.
type Paths struct {
	Rules      string
	Content    string
	Questions  string
	Encounters string
}

// Register binds the paths to flags on fs.
func (p *Paths) Register(fs *flag.FlagSet) {
	fs.StringVar(&p.Rules, "rules", "", "path to rules YAML file (default: built-in rules)")
	fs.StringVar(&p.Content, "content", "", "path to content YAML file layered over the built-in cards and enemies")
	fs.StringVar(&p.Questions, "questions", "", "path to question bank YAML file (default: arithmetic)")
	fs.StringVar(&p.Encounters, "encounters", "", "path to encounters YAML file (default: built-in encounters)")
}

// Load reads every configured file, applies QUIZCRAWL_* environment
// overrides to the rules and checks each encounter against the tables.
// A nil logger discards engine events.
func Load(p Paths, logger log.EventLogger) (*battle.Engine, *content.EncounterFile, error) {
	rules := config.Default()
	if p.Rules != "" {
		r, err := config.Load(p.Rules)
		if err != nil {
			return nil, nil, fmt.Errorf("load rules: %w", err)
		}
		rules = r
	}
	rules = config.FromEnv(rules)

	tables := content.Builtin()
	if p.Content != "" {
		t, err := content.Load(p.Content)
		if err != nil {
			return nil, nil, fmt.Errorf("load content: %w", err)
		}
		tables = t
	}

	var questions quiz.Source
	if p.Questions != "" {
		bank, err := quiz.LoadBank(p.Questions)
		if err != nil {
			return nil, nil, fmt.Errorf("load questions: %w", err)
		}
		questions = bank
	}

	encounters := content.DefaultEncounters()
	if p.Encounters != "" {
		ef, err := content.ParseEncounterFile(p.Encounters)
		if err != nil {
			return nil, nil, fmt.Errorf("load encounters: %w", err)
		}
		encounters = ef
	}
	if len(encounters.Encounters) == 0 {
		return nil, nil, fmt.Errorf("no encounters defined")
	}
	for _, enc := range encounters.Encounters {
		if err := enc.Validate(tables); err != nil {
			return nil, nil, err
		}
	}

	engine := battle.NewEngine(battle.EngineConfig{
		Tables:    tables,
		Rules:     &rules,
		Questions: questions,
		Logger:    logger,
	})
	return engine, encounters, nil
}
