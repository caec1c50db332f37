package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

var messageType string

var messageCmd = &cobra.Command{
	Use:     "message",
	Aliases: []string{"msg"},
	Short:   "Read and post messages",
}

var messageListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List messages, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		feed, err := commands.NewListMessagesCommand(rt.Store).Execute(context.Background())
		if err != nil {
			return err
		}

		w := out(cmd)
		fmt.Fprintf(w, "%d unread\n", feed.Unread)
		for _, m := range feed.Messages {
			marker := " "
			if !m.IsRead {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %s  %s  %s: %s\n",
				marker, shortID(m.ID), m.Timestamp.In(rt.Env.Loc()).Format("2006-01-02 15:04"), m.Title, m.Content)
		}
		return nil
	},
}

var messageReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a message as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := resolveMessageID(ctx, args[0])
		if err != nil {
			return err
		}
		if err := commands.NewMarkMessageReadCommand(rt.Store, id).Execute(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), "Marked as read")
		return nil
	},
}

var messageSendCmd = &cobra.Command{
	Use:   "send <title> <content>",
	Short: "Post a message to the feed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := commands.NewAddMessageCommand(rt.Store, rt.Env.Clock, domain.Message{
			Type:    domain.MessageType(messageType),
			Title:   args[0],
			Content: args[1],
		}).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), m.ID)
		return nil
	},
}

func resolveMessageID(ctx context.Context, prefix string) (string, error) {
	msgs, err := rt.Store.ListMessages(ctx)
	if err != nil {
		return "", err
	}
	var match string
	for _, m := range msgs {
		if m.ID == prefix {
			return m.ID, nil
		}
		if len(prefix) > 0 && len(m.ID) >= len(prefix) && m.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("ambiguous message id %q", prefix)
			}
			match = m.ID
		}
	}
	if match == "" {
		// let the store report the missing ID
		return prefix, nil
	}
	return match, nil
}

func init() {
	rootCmd.AddCommand(messageCmd)
	messageCmd.AddCommand(messageListCmd, messageReadCmd, messageSendCmd)

	messageSendCmd.Flags().StringVarP(&messageType, "type", "t", string(domain.MessageFriendUpdate),
		"friend_update, event_reminder or invitation")
}
