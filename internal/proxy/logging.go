package proxy

import (
	"log"
	"os"
)

func defaultStdLogger() *log.Logger {
	return log.New(os.Stderr, "tcp-h2-describe: ", log.LstdFlags)
}
