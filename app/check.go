package app

import (
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"

	"github.com/JasonWyse/epic/nlp/format/rules"
	"github.com/JasonWyse/epic/nlp/grammar"
)

func CheckConfigOut() {
	log.Println("Configuration")
	log.Println()
	log.Println("Data")
	log.Printf("Grammar file:\t\t%s", grammarFile)
	if !VerifyExists(grammarFile) {
		os.Exit(1)
	}
}

// Check diagnoses a grammar: labels the root never expands to, labels
// that derive no word, and the rules touching either kind.
func Check(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"g"}
	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		CheckConfigOut()
		log.Println()
		log.Println("Reading model from", grammarFile)
	}
	w, err := rules.ReadFile(grammarFile)
	if err != nil {
		log.Println(err)
		return err
	}
	if allOut {
		log.Println("Read", w.G.NumRules(), "rules,", w.G.NumLabels(), "labels")
		log.Println()
	}

	analysis := grammar.Analyze(w.G, w.Lexicon.Tags())
	for _, label := range analysis.Unreachable {
		log.Println("Unreachable label:", w.G.Labels.ValueOf(label))
	}
	for _, label := range analysis.Unproductive {
		log.Println("Unproductive label:", w.G.Labels.ValueOf(label))
	}
	for _, id := range analysis.DeadRules {
		log.Println("Dead rule:", w.G.RuleString(id))
	}
	if !analysis.Empty() {
		return errors.Errorf("%d unreachable labels, %d unproductive labels, %d dead rules",
			len(analysis.Unreachable), len(analysis.Unproductive), len(analysis.DeadRules))
	}
	log.Println("Grammar is clean")
	return nil
}

func CheckCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Check,
		UsageLine: "check <file options> [arguments]",
		Short:     "diagnoses unreachable labels and dead rules in a grammar",
		Long: `
diagnoses unreachable labels and dead rules in a grammar

	$ ./epic check -g <grammar>

`,
		Flag: *flag.NewFlagSet("check", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&grammarFile, "g", "", "Grammar/Lexicon File (rules format)")
	return cmd
}
