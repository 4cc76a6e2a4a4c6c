package main

import (
	"fmt"
	"os"

	"github.com/irsalhamdi/realty-training/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	if err := cli.Execute(cli.NewApp(log), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, cli.Describe(err))
		os.Exit(1)
	}
}
