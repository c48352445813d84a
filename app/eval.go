package app

import (
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/JasonWyse/epic/nlp/format/events"
)

func EvalConfigOut() {
	log.Println("Configuration")
	log.Printf("Tolerance:\t\t%v", tolerance)
	log.Println()
	log.Println("Data")
	log.Printf("Test events file:\t%s", testEvents)
	if !VerifyExists(testEvents) {
		os.Exit(1)
	}
	log.Printf("Gold events file:\t%s", goldEvents)
	if !VerifyExists(goldEvents) {
		os.Exit(1)
	}
}

// Eval measures the agreement of two posterior event streams, e.g. a
// pruned run against an exhaustive one.
func Eval(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"test", "gold"}
	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		EvalConfigOut()
		log.Println()
	}
	test, err := events.ReadFile(testEvents)
	if err != nil {
		log.Println(err)
		return err
	}
	gold, err := events.ReadFile(goldEvents)
	if err != nil {
		log.Println(err)
		return err
	}
	if allOut {
		log.Println("Read", len(test), "test events,", len(gold), "gold events")
	}

	total := events.Compare(test, gold, tolerance)
	log.Println("Result (P, R, F1, EM #, EM %): ", total.Precision(), total.Recall(), total.F1(),
		total.Exact, total.ExactMatch(), "TruePos:", total.TP, "in", total.Population)
	errs := total.Errors()
	if len(errs) > 0 {
		log.Println("Errors by class:", errs.ByType())
		for _, e := range errs {
			log.Println(e.String())
		}
	}
	return nil
}

func EvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Eval,
		UsageLine: "eval <file options> [arguments]",
		Short:     "measures agreement between two posterior event streams",
		Long: `
measures agreement between two posterior event streams

	$ ./epic eval -test <events> -gold <events> [-tol <tolerance>]

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&testEvents, "test", "", "Test Events File (TSV)")
	cmd.Flag.StringVar(&goldEvents, "gold", "", "Gold Events File (TSV)")
	cmd.Flag.Float64Var(&tolerance, "tol", 1e-6, "Absolute Count Tolerance")
	return cmd
}
