package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/mentor-match/internal/artifact"
	"github.com/spigell/mentor-match/internal/secrets"
	"github.com/spigell/mentor-match/internal/server"
)

// tokenEnv holds the api token itself, as an alternative to a token file.
const tokenEnv = "MENTOR_MATCH_TOKEN"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recommendations and chat over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on. Default is :5000.")
	serveCmd.Flags().Bool("missing-as-empty", false, "treat absent skills or interests as empty sets instead of rejecting the profile")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("server.missing-as-empty", serveCmd.Flags().Lookup("missing-as-empty"))
}

func serve() {
	logger, config := setup("stdout")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := artifact.LoadModel(config.ArtifactDir)
	if err != nil {
		logger.Fatal("loading model",
			zap.Error(err),
			zap.String("dir", config.ArtifactDir),
			zap.String("hint", "run `mentor-match build` first"),
		)
	}

	logger.Info("model loaded", zap.Int("archetypes", model.Len()), zap.String("dir", config.ArtifactDir))

	responder, err := newResponder(config.Chat)
	if err != nil {
		logger.Fatal("building chat responder", zap.Error(err))
	}

	token := ""
	tokenSource := secrets.Source{
		Name: "api token",
		File: config.Server.TokenFile,
		Env:  tokenEnv,
	}
	if secrets.Configured(tokenSource) {
		token, err = secrets.Load(tokenSource)
		if err != nil {
			logger.Fatal("loading api token",
				zap.Error(err),
				zap.String("hint", "set MENTOR_MATCH_TOKEN_FILE environment variable or the 'server.token-file' key in the configuration file"),
			)
		}
	}

	srv, err := server.New(config.Server, server.Deps{
		Model:     model,
		Responder: responder,
		Logger:    logger,
		Token:     token,
	})
	if err != nil {
		logger.Fatal("creating server", zap.Error(err))
	}

	logger.Info("starting the mentor-match server", zap.String("version", version), zap.Bool("auth", token != ""))

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
