package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hojin-dev/newschat/internal/app"
	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/session"
)

var (
	askKeyword     string
	askDestination string
	askLocale      string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot grounded question",
	Long: `ask creates an ephemeral session, grounds it in the given news
keyword or travel destination, and prints the assistant's answer.

Examples:

  newschat ask --keyword "반도체" "최근 동향을 요약해줘"
  newschat ask --destination seoul --locale en "What should I eat?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd.Context(), args[0])
	},
}

func init() {
	askCmd.Flags().StringVar(&askKeyword, "keyword", "", "news keyword to ground in")
	askCmd.Flags().StringVar(&askDestination, "destination", "", "travel destination to ground in")
	askCmd.Flags().StringVar(&askLocale, "locale", "", "answer language (en, ko)")
	askCmd.MarkFlagsMutuallyExclusive("keyword", "destination")
	askCmd.MarkFlagsOneRequired("keyword", "destination")
	rootCmd.AddCommand(askCmd)
}

func runAsk(parent context.Context, question string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()

	a, err := app.Setup(parent, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	loc := cfg.DefaultLocale()
	if askLocale != "" {
		if loc, err = i18n.Parse(askLocale); err != nil {
			return err
		}
	}

	key := session.QueryKey{Locale: loc}
	if askDestination != "" {
		key.Mode = session.ModeTravel
		key.Destination = askDestination
	} else {
		key.Mode = session.ModeNews
		key.Keyword = askKeyword
	}

	sess := a.Sessions.Create()
	id := sess.ID()

	query, err := a.SetQuery(parent, id, key)
	if err != nil {
		if errors.Is(err, session.ErrInvalidQueryKey) {
			return err
		}
		return fmt.Errorf("setting query key: %w", err)
	}
	if query.Warning != "" {
		fmt.Println(query.Warning)
	}
	if query.Welcome.Content != "" {
		fmt.Println(query.Welcome.Content)
		fmt.Println(strings.Repeat("-", 40))
	}

	res, err := a.Send(parent, id, question)
	if err != nil {
		return fmt.Errorf("completing: %w", err)
	}
	fmt.Println(res.Turn.Content)
	return nil
}
