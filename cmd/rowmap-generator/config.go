package main

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"rowmap-generator/internal/gen"
	"rowmap-generator/internal/logging"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "rowmap"
	configFolderPath = "."

	envPrefix = "ROWMAP"

	configFlagName        = "config"
	dirFlagName           = "dir"
	verboseFlagName       = "verbose"
	logFileFlagName       = "log-file"
	logLevelFlagName      = "log-level"
	outputFlagName        = "output"
	runtimeImportFlagName = "runtime-import"
	suffixFlagName        = "suffix"
	commentsFlagName      = "comments"
	workersFlagName       = "workers"

	dirKey           = "dir"
	outputKey        = "gen.output"
	runtimeImportKey = "gen.runtime_import"
	suffixKey        = "gen.file_suffix"
	commentsKey      = "gen.comments"
	workersKey       = "plan.workers"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultWorkers       = 4
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// newConfig returns a viper instance reading ROWMAP_* variables and rowmap.yaml.
func newConfig() *viper.Viper {
	v := viper.New()

	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolderPath)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(configVersionKey, currentConfigVersion)
	v.SetDefault(dirKey, "")
	v.SetDefault(outputKey, "")
	v.SetDefault(runtimeImportKey, gen.DefaultRuntimeImport)
	v.SetDefault(suffixKey, gen.DefaultFileSuffix)
	v.SetDefault(commentsKey, true)
	v.SetDefault(workersKey, defaultWorkers)

	v.SetDefault(logFilenameKey, "")
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, false)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	return v
}

// readConfig loads path, or rowmap.yaml from the working directory when path is empty.
// A missing default file is not an error.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}

	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		return nil
	}

	return err
}

func loggingConfig(v *viper.Viper) logging.Config {
	return logging.Config{
		Level:      v.GetString(logLevelKey),
		Verbose:    v.GetBool(logVerboseKey),
		File:       v.GetString(logFilenameKey),
		MaxSize:    v.GetInt(logMaxSizeKey),
		MaxBackups: v.GetInt(logMaxBackupsKey),
		MaxAge:     v.GetInt(logMaxAgeKey),
		Compress:   v.GetBool(logCompressKey),
	}
}

func generatorConfig(v *viper.Viper) gen.GeneratorConfig {
	return gen.GeneratorConfig{
		RuntimeImport:    v.GetString(runtimeImportKey),
		FileSuffix:       v.GetString(suffixKey),
		OutputDir:        v.GetString(outputKey),
		GenerateComments: v.GetBool(commentsKey),
	}
}
