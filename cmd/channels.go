package cmd

import (
	"fmt"
	"io"

	"github.com/saravenpi/chatflow/internal/mock"
	"github.com/saravenpi/chatflow/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(channelsCmd)
}

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List the channel directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := mock.Open()
		if err != nil {
			return err
		}
		defer dir.Close()

		channels, err := dir.Channels()
		if err != nil {
			return err
		}
		printChannels(cmd.OutOrStdout(), channels)
		return nil
	},
}

func printChannels(w io.Writer, channels []models.Channel) {
	fmt.Fprintln(w, "💬 Channels:")
	fmt.Fprintln(w, "============")
	for _, ch := range channels {
		unread := ""
		if ch.Unread > 0 {
			unread = fmt.Sprintf("%d unread", ch.Unread)
		}
		fmt.Fprintf(w, "%-12s %-16s %-15s %s\n", ch.ID, ch.Name, ch.Type.Label(), unread)
	}
	fmt.Fprintf(w, "\n%d channels\n", len(channels))
}
