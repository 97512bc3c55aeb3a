package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask a question about career trends",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ask(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func ask(message string) {
	logger, config := setup("stderr")

	responder, err := newResponder(config.Chat)
	if err != nil {
		logger.Fatal("building chat responder", zap.Error(err))
	}

	reply, err := responder.Respond(message)
	if err != nil {
		logger.Fatal("answering", zap.Error(err))
	}

	logger.Debug("chat answered", zap.String("rule", reply.Rule))
	fmt.Println(reply.Text)
}
