// Command schema prints the PostgreSQL DDL for the declared tables. Applying
// it is left to the migration tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/schema"
)

func main() {
	out := flag.String("o", "", "write the DDL to this file instead of stdout")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ddl, err := schema.PostgresDDL(schema.Tables()...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate schema")
	}

	if *out == "" {
		fmt.Print(ddl)
		return
	}
	if err := os.WriteFile(*out, []byte(ddl), 0o644); err != nil {
		log.Fatal().Err(err).Str("file", *out).Msg("failed to write schema")
	}
	log.Info().Str("file", *out).Int("tables", len(schema.Tables())).Msg("schema written")
}
