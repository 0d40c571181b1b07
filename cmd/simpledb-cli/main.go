package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/0xRadioAc7iv/go-simpledb/internal"
	"github.com/0xRadioAc7iv/go-simpledb/internal/command"
	"github.com/0xRadioAc7iv/go-simpledb/internal/logging"
	"github.com/0xRadioAc7iv/go-simpledb/internal/utils"
	"github.com/0xRadioAc7iv/go-simpledb/simpledb"
)

func main() {
	in := utils.HandleCLIInputs()

	cfg, err := internal.LoadConfig(in.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	applyOverrides(cfg, in)

	logger := logging.NewLogger(cfg.Logger.Level)

	db, err := simpledb.Open(simpledb.WithConfig(cfg), simpledb.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.LogFilePath).Msg("unable to open database")
	}
	defer db.Close()

	fmt.Printf("Opened %s\n", cfg.LogFilePath)
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Println("input error:", err)
			}
			return
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		if strings.EqualFold(line, "exit") {
			return
		}

		cmd, err := command.Parse(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}

		resp, err := command.Execute(db, cmd)
		if err != nil {
			db.Close()
			logger.Fatal().Err(err).Msg("database fault")
		}

		fmt.Println(resp)
	}
}

func applyOverrides(cfg *internal.Config, in utils.CLIInputs) {
	if in.LogFilePath != "" {
		cfg.LogFilePath = in.LogFilePath
	}
	if in.MaxBytesPerFile != 0 {
		cfg.MaxBytesPerFile = in.MaxBytesPerFile
	}
	if in.Compression != "" {
		cfg.Compression = in.Compression
	}
	if in.LogLevel != "" {
		cfg.Logger.Level = in.LogLevel
	}
}
