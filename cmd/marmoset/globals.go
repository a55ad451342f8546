package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/marmoset-lang/marmoset"
	"github.com/marmoset-lang/marmoset/modules/bcrypt"
	"github.com/marmoset-lang/marmoset/modules/pg"
	"github.com/marmoset-lang/marmoset/modules/uuid"
	"github.com/marmoset-lang/marmoset/object"
)

// getGlobals builds the global environment for script execution. On top of
// the standard library this adds the modules that carry extra Go
// dependencies, which the embeddable marmoset package deliberately omits.
func getGlobals() map[string]object.Object {
	if viper.GetBool("no-default-globals") {
		return nil
	}
	globals := marmoset.Builtins()
	globals["bcrypt"] = bcrypt.Module()
	globals["pg"] = pg.Module()
	globals["uuid"] = uuid.Module()
	return globals
}

// getLogger builds the logger for expansion and evaluation traces. Logging
// is disabled unless --log-level selects a level.
func getLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.Disabled
	}
	if level == zerolog.Disabled {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

func getOptions() []marmoset.Option {
	return []marmoset.Option{
		marmoset.WithGlobals(getGlobals()),
		marmoset.WithLogger(getLogger()),
	}
}
