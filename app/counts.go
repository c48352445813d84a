package app

import (
	"bufio"
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/JasonWyse/epic/nlp/counts"
)

func CountsConfigOut() {
	log.Println("Configuration")
	log.Println()
	log.Println("Data")
	log.Printf("Counts store:\t\t%s", countDB)
	if !VerifyExists(countDB) {
		os.Exit(1)
	}
	if len(output) > 0 {
		log.Printf("Out file:\t\t%s", output)
	}
}

// Counts dumps a persistent count store accumulated by marginals runs.
func Counts(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"db"}
	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		CountsConfigOut()
		log.Println()
	}
	store, err := counts.OpenStore(countDB)
	if err != nil {
		log.Println(err)
		return err
	}
	defer store.Close()

	writer := os.Stdout
	if len(output) > 0 {
		file, err := os.Create(output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}
	buf := bufio.NewWriter(writer)
	if err := store.Dump(buf); err != nil {
		return err
	}
	return buf.Flush()
}

func CountsCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Counts,
		UsageLine: "counts <file options> [arguments]",
		Short:     "dumps a persistent count store as TSV",
		Long: `
dumps a persistent count store as TSV

	$ ./epic counts -db <db> [-o <out>]

`,
		Flag: *flag.NewFlagSet("counts", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&countDB, "db", "", "Persistent Count Store (bolt database)")
	cmd.Flag.StringVar(&output, "o", "", "Output File; default standard output")
	return cmd
}
