package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/localnerve/glucodb/internal/devdb"
	"github.com/localnerve/glucodb/internal/logger"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var outFilename string
	flag.StringVar(&outFilename, "o", "", "write the connection settings to this .env file")
	flag.Parse()

	usage := `
Run a throwaway glucodb database (and optionally an Authorizer) in Docker.

Usage:

devdb [-h] [-f ENV_FILE_PATH] [-o OUT_ENV_FILE]

ENV_FILE_PATH: path to a .env file with DB_TYPE, DB_IMAGE, DEVDB_AUTHORIZER, ...
OUT_ENV_FILE:  where to write the settings the server needs to connect

example
  devdb -f ./devdb.env -o ./.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logger.New("glucodb-devdb", "info")

	if envFilename != "" {
		log.Info().Str("file", envFilename).Msg("Loading environment variables")
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal().Err(err).Msg("Failed to load environment variables")
		}
	} else {
		log.Info().Msg("No environment file specified, using current environment variables")
	}

	opts, err := devdb.OptionsFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid options")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	containers, err := devdb.Start(ctx, opts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start containers")
	}

	env := containers.Env()
	if outFilename != "" {
		if err := godotenv.Write(env, outFilename); err != nil {
			log.Error().Err(err).Str("file", outFilename).Msg("Failed to write env file")
		} else {
			log.Info().Str("file", outFilename).Msg("Wrote connection settings")
		}
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(os.Stdout, "%s=%s\n", k, env[k])
	}

	<-ctx.Done()
	log.Info().Msg("Received signal, terminating containers...")

	shutdown, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := containers.Terminate(shutdown); err != nil {
		log.Error().Err(err).Msg("Failed to terminate containers")
	}
}
