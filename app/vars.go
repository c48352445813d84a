package app

import (
	"log"
	"os"

	"github.com/gonuts/commander"
)

var (
	allOut bool = true

	// processing options
	limit      int
	viterbi    bool
	exhaustive bool
	bufferSize int
	tolerance  float64

	// file names
	grammarFile string
	input       string
	outEvents   string
	outCounts   string
	countDB     string
	confFile    string
	testEvents  string
	goldEvents  string
	output      string
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f.Value.String() == "" {
			log.Printf("Required flag %s not set", f.Name)
			cmd.Usage()
			os.Exit(1)
		}
	}
}
