package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/mentor-match/internal/artifact"
	"github.com/spigell/mentor-match/internal/career"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the reference catalog and its feature matrix",
	Run: func(cmd *cobra.Command, _ []string) {
		build(cmd)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("seed-file", "s", "", "YAML file with seed archetypes. Default is the built-in seed.")
	buildCmd.Flags().Duration("lock-timeout", 30*time.Second, "how long to wait for another build to release the artifact")

	viper.BindPFlag("seed-file", buildCmd.Flags().Lookup("seed-file"))
}

func build(cmd *cobra.Command) {
	logger, config := setup("stdout")

	timeout, _ := cmd.Flags().GetDuration("lock-timeout")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	seed, err := career.LoadSeedFile(config.SeedFile)
	if err != nil {
		logger.Fatal("loading seed archetypes", zap.Error(err))
	}

	logger.Info("building catalog",
		zap.Int("archetypes", len(seed)),
		zap.String("seed_file", config.SeedFile),
	)

	catalog, matrix, err := career.Build(seed)
	if err != nil {
		logger.Fatal("building catalog", zap.Error(err))
	}

	manifest, err := artifact.Write(ctx, config.ArtifactDir, catalog, matrix)
	if err != nil {
		logger.Fatal("writing artifact", zap.Error(err), zap.String("dir", config.ArtifactDir))
	}

	logger.Info("catalog built",
		zap.String("dir", config.ArtifactDir),
		zap.Int("archetypes", manifest.Archetypes),
		zap.Int("dim", manifest.Dim),
	)
}
