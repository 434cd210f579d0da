package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/kario/internal/chat"
)

func chatCmd() *cobra.Command {
	var (
		session string
		attach  []string
		list    bool
		remove  bool
	)
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the assistant",
		Long: `Send one message to the configured chat endpoint. Without --session a
new conversation is started and its id is printed to stderr.
The API key is read from KARIO_CHAT_API_KEY.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			sender := chat.NewHTTPSender(a.cfg.Chat.Endpoint, a.cfg.Chat.Model, a.cfg.Chat.APIKey)
			chats := chat.NewChats(a.store, sender, a.log)

			switch {
			case list:
				ids, err := chats.List(ctx)
				if err != nil {
					return err
				}
				var b strings.Builder
				for _, id := range ids {
					fmt.Fprintf(&b, "%s  %s\n", id, chats.Load(ctx, id).Title)
				}
				printOutput(formatter.FormatMessage(strings.TrimSuffix(b.String(), "\n")))
				return nil
			case remove:
				if session == "" {
					return fmt.Errorf("--delete needs --session")
				}
				if err := chats.Delete(ctx, session); err != nil {
					return err
				}
				printOutput(formatter.FormatMessage("deleted " + session))
				return nil
			}

			if session == "" {
				session = chat.NewID()
				fmt.Fprintf(os.Stderr, "session: %s\n", session)
			}
			reply, err := chats.Send(ctx, session, strings.Join(args, " "), chat.LoadFiles(attach, a.log))
			if err != nil {
				return err
			}
			printOutput(formatter.FormatMessage(reply.Content))
			return nil
		},
	}
	cmd.Flags().StringVarP(&session, "session", "s", "", "Conversation id to continue")
	cmd.Flags().StringSliceVarP(&attach, "attach", "a", nil, "Files to attach (repeatable)")
	cmd.Flags().BoolVar(&list, "list", false, "List stored conversations")
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete the conversation given by --session")
	return cmd
}
