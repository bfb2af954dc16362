package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/game"
)

var playDaily bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one round in the terminal",
	Long: `Prints the root word, then reads one candidate per line from stdin.
Accepted words are listed with their length; refused words print the reason.
End input (Ctrl-D) to finish the round.`,
	RunE: runPlayCmd,
}

func init() {
	playCmd.Flags().BoolVar(&playDaily, "daily", false, "use today's daily root word")
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	src := mustLoadWords()
	dict, err := openDictionary(cmd.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to open dictionary")
		return err
	}
	defer dict.Close()

	root := game.SelectRootWord(src)
	if playDaily {
		root = daily.RootWord(time.Now(), cfg.Round.DailySalt, src)
	}
	sess, err := game.NewSession(root, playDaily)
	if err != nil {
		return err
	}
	return playRound(cmd.Context(), sess, dict, cmd.InOrStdin(), cmd.OutOrStdout())
}

// playRound runs the read-evaluate-print loop for one session until in is
// exhausted, then prints the accepted words.
func playRound(ctx context.Context, sess *game.Session, dict game.Dictionary, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Root word: %s\n", sess.Round().RootWord)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		word, err := sess.Submit(ctx, sc.Text(), dict)
		var rej *game.Rejection
		switch {
		case err == nil:
			fmt.Fprintf(out, "(%d) %s\n", len([]rune(word)), word)
		case errors.As(err, &rej):
			if !rej.Silent() {
				fmt.Fprintf(out, "%s %s\n", rej.Title, rej.Message)
			}
		default:
			return fmt.Errorf("evaluate word: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	used := sess.Round().UsedWords
	fmt.Fprintf(out, "Round over: %d word(s) found.\n", len(used))
	return nil
}
