package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"
)

const DefaultHistoryDB = ".rewritestats_history.db"

var Version string

func setupLogging() {
	// Create or open the error log file
	logFile, err := os.OpenFile("rewritestats.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Println("Failed to open error log file:", err)
		return
	}

	log.SetOutput(logFile)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	setupLogging()
	if _, exists := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME"); exists {
		// Running in Lambda mode
		log.Println("Starting in Lambda mode")
		lambda.Start(Handler)
	} else {
		// Running in CLI mode
		log.Println("Starting in CLI mode")
		cli := &Cli{}
		if err := cli.Execute(); err != nil {
			log.Fatalf("Error executing command: %v", err)
		}
	}
}
