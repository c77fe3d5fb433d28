package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "go.uber.org/automaxprocs"

	"github.com/f5xs-0000a/rusty-website/accesslog"
	"github.com/f5xs-0000a/rusty-website/server"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7878", "server listen address")
	logFile := flag.String("log-file", "log.txt", "access log path")
	dataFile := flag.String("data-file", "data/mycology.yaml", "mycology dataset path")
	pagesDir := flag.String("pages-dir", "pages", "HTML template directory")
	filesDir := flag.String("files-dir", "files", "static site document root")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Constructed once, up front, so an unopenable log path surfaces at
	// startup instead of on the first error that needs it.
	errLog := accesslog.NewFallback(*logFile)

	srv := server.New(server.Config{
		Addr:     *addr,
		LogFile:  *logFile,
		PagesDir: *pagesDir,
		FilesDir: *filesDir,
		DataFile: *dataFile,
	}, errLog)

	log.Fatal().Err(srv.Run()).Msg("server exited")
}
